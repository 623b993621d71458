package models

import (
	"database/sql"
	"strings"
	"time"
)

// User представляет пользователя системы.
// Роли не взаимоисключающие: пользователь может быть одновременно заказчиком
// и исполнителем, активная роль хранится в LastRole и используется только
// презентационным слоем.
type User struct {
	ID         int64
	TgID       sql.NullInt64  // chat_id в Telegram, уникален если задан
	Phone      string         // нормализованный номер, глобально уникален
	FirstName  sql.NullString
	LastName   sql.NullString
	OrgName    sql.NullString
	IsCustomer bool
	IsExecutor bool
	IsAdmin    bool
	LastRole   sql.NullString
	Blocked    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName возвращает "Имя Фамилия" без лишних пробелов.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName.String) + " " + strings.TrimSpace(u.LastName.String))
}
