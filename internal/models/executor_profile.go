package models

import (
	"database/sql"
	"time"
)

// ExecutorProfile — анкета исполнителя, один к одному с пользователем,
// у которого is_executor = true. Пересоздается целиком при повторной
// регистрации, частичных обновлений полей нет.
type ExecutorProfile struct {
	UserID            int64
	Experience        string
	ResumeLink        sql.NullString
	ResumeText        sql.NullString
	DocTypes          StringList
	ConstructionTypes StringList
	SectionsCapital   StringList
	SectionsLinear    StringList
	UpdatedAt         time.Time

	// Поля пользователя, подтягиваемые JOIN-ом при перечислении кандидатов.
	FirstName sql.NullString
	LastName  sql.NullString
	OrgName   sql.NullString
	Phone     string
	TgID      sql.NullInt64
	Blocked   bool
}
