package models

import (
	"database/sql"
	"time"
)

// Order — заказ на разработку разделов документации.
// Принадлежит ровно одному заказчику; статус и назначенный исполнитель
// меняются только вместе, по машине состояний ядра.
type Order struct {
	ID                 int64
	CustomerID         int64
	Name               string
	DocTypes           StringList
	ConstructionTypes  StringList
	SectionsCapital    StringList
	SectionsLinear     StringList
	Description        sql.NullString
	Deadline           sql.NullString // валидированная дата в виде строки YYYY-MM-DD
	Price              sql.NullString // цена как непрозрачная строка ("договорная" допустима)
	ExpertiseRequired  sql.NullBool
	FilesLink          sql.NullString
	Status             string
	AssignedExecutorID sql.NullInt64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderDraft — проверенное презентационным слоем содержимое заказа.
// Ядро не выполняет текстовой валидации, только доменные проверки.
type OrderDraft struct {
	Name              string
	DocTypes          StringList
	ConstructionTypes StringList
	SectionsCapital   StringList
	SectionsLinear    StringList
	Description       string
	Deadline          string
	Price             string
	ExpertiseRequired bool
	FilesLink         string
}

// IsAssignedTo сообщает, закреплен ли заказ за данным исполнителем.
func (o *Order) IsAssignedTo(executorID int64) bool {
	return o.AssignedExecutorID.Valid && o.AssignedExecutorID.Int64 == executorID
}
