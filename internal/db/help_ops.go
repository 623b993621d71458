package db

import (
	"fmt"
	"log"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// AddHelpMessage сохраняет обращение пользователя в поддержку.
func (s *Store) AddHelpMessage(fromUserID int64, role, text string) (*models.HelpMessage, error) {
	query := `
        INSERT INTO help_messages (from_user_id, role, text, status, created_at)
        VALUES ($1, $2, $3, 'new', NOW())
        RETURNING id, from_user_id, role, text, status, created_at`
	var m models.HelpMessage
	err := s.db.QueryRow(query, fromUserID, role, text).Scan(
		&m.ID, &m.FromUserID, &m.Role, &m.Text, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		log.Printf("AddHelpMessage: ошибка сохранения обращения пользователя ID %d: %v", fromUserID, err)
		return nil, fmt.Errorf("ошибка сохранения обращения: %w", err)
	}
	log.Printf("AddHelpMessage: обращение #%d пользователя ID %d сохранено.", m.ID, fromUserID)
	return &m, nil
}

// CountStats собирает сводные показатели для административных отчетов.
func (s *Store) CountStats() (*models.Stats, error) {
	var stats models.Stats
	query := `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM users WHERE is_customer = TRUE),
            (SELECT COUNT(*) FROM users WHERE is_executor = TRUE),
            (SELECT COUNT(*) FROM orders),
            (SELECT COUNT(*) FROM orders WHERE assigned_executor_id IS NOT NULL AND status != $1)`
	err := s.db.QueryRow(query, constants.STATUS_CLOSED).Scan(
		&stats.Users, &stats.Customers, &stats.Executors, &stats.Orders, &stats.InWork,
	)
	if err != nil {
		log.Printf("CountStats: ошибка подсчета статистики: %v", err)
		return nil, fmt.Errorf("ошибка подсчета статистики: %w", err)
	}
	return &stats, nil
}
