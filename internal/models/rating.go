package models

import (
	"database/sql"
	"time"
)

// Rating — оценка по закрытому заказу, ключ (order_id, from_user_id, to_user_id).
// Повторная отправка перезаписывает звезды и отзыв, не создавая дубликата.
type Rating struct {
	ID         int64
	OrderID    int64
	FromUserID int64
	ToUserID   int64
	Stars      int // 1..5
	Review     sql.NullString
	CreatedAt  time.Time
}

// HelpMessage — обращение пользователя в поддержку.
type HelpMessage struct {
	ID         int64
	FromUserID int64
	Role       string
	Text       string
	Status     string
	CreatedAt  time.Time
}

// Stats — сводные показатели для административных отчетов.
type Stats struct {
	Users     int
	Customers int
	Executors int
	Orders    int
	InWork    int
}
