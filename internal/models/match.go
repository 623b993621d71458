package models

import (
	"database/sql"
	"time"

	"Proektbot/internal/constants"
)

// Match — строка реестра решений по паре (заказ, исполнитель).
// Каждая сторона пишет только свое поле решения; строка никогда не удаляется.
type Match struct {
	ID               int64
	OrderID          int64
	ExecutorID       int64
	CustomerDecision sql.NullString // NULL — решение не принято
	ExecutorDecision sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DecisionFor возвращает решение указанной стороны ("" если не принято).
func (m *Match) DecisionFor(side string) string {
	switch side {
	case constants.ROLE_CUSTOMER:
		return m.CustomerDecision.String
	case constants.ROLE_EXECUTOR:
		return m.ExecutorDecision.String
	}
	return ""
}

// IsMutualLike сообщает, поставили ли обе стороны liked.
func (m *Match) IsMutualLike() bool {
	return m.CustomerDecision.String == constants.DECISION_LIKED &&
		m.ExecutorDecision.String == constants.DECISION_LIKED
}
