package db

import (
	"database/sql"
	"fmt"
	"log"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

const matchColumns = `id, order_id, executor_id, customer_decision, executor_decision, created_at, updated_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.OrderID, &m.ExecutorID, &m.CustomerDecision, &m.ExecutorDecision, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertDecision записывает решение одной стороны по паре (заказ, исполнитель).
// COALESCE сохраняет решение второй стороны нетронутым; повторная запись
// той же стороны замещает ее прежнее решение.
func (s *Store) UpsertDecision(orderID, executorID int64, side, decision string) error {
	var customerDecision, executorDecision sql.NullString
	switch side {
	case constants.ROLE_CUSTOMER:
		customerDecision = sql.NullString{String: decision, Valid: true}
	case constants.ROLE_EXECUTOR:
		executorDecision = sql.NullString{String: decision, Valid: true}
	default:
		return fmt.Errorf("неизвестная сторона решения: %s", side)
	}

	query := `
        INSERT INTO matches (order_id, executor_id, customer_decision, executor_decision, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        ON CONFLICT (order_id, executor_id) DO UPDATE SET
            customer_decision = COALESCE(EXCLUDED.customer_decision, matches.customer_decision),
            executor_decision = COALESCE(EXCLUDED.executor_decision, matches.executor_decision),
            updated_at = NOW()`
	_, err := s.db.Exec(query, orderID, executorID, customerDecision, executorDecision)
	if err != nil {
		log.Printf("UpsertDecision: ошибка записи решения (заказ %d, исполнитель %d, сторона %s): %v", orderID, executorID, side, err)
		return fmt.Errorf("ошибка записи решения: %w", mapConstraintErr(err))
	}
	return nil
}

// GetMatch возвращает строку реестра по паре или nil, если решения еще не было.
func (s *Store) GetMatch(orderID, executorID int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE order_id = $1 AND executor_id = $2`
	match, err := scanMatch(s.db.QueryRow(query, orderID, executorID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetMatch: ошибка получения пары (заказ %d, исполнитель %d): %v", orderID, executorID, err)
		return nil, fmt.Errorf("ошибка получения пары: %w", err)
	}
	return match, nil
}

func (s *Store) queryMatches(query string, args ...interface{}) ([]models.Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// ListMatchesForOrder возвращает все строки реестра по заказу.
func (s *Store) ListMatchesForOrder(orderID int64) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE order_id = $1 ORDER BY id`
	matches, err := s.queryMatches(query, orderID)
	if err != nil {
		log.Printf("ListMatchesForOrder: ошибка запроса пар заказа ID %d: %v", orderID, err)
		return nil, fmt.Errorf("ошибка получения пар заказа: %w", err)
	}
	return matches, nil
}

// ListMatchesForExecutor возвращает все строки реестра по исполнителю.
func (s *Store) ListMatchesForExecutor(executorID int64) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE executor_id = $1 ORDER BY id`
	matches, err := s.queryMatches(query, executorID)
	if err != nil {
		log.Printf("ListMatchesForExecutor: ошибка запроса пар исполнителя ID %d: %v", executorID, err)
		return nil, fmt.Errorf("ошибка получения пар исполнителя: %w", err)
	}
	return matches, nil
}

// ListMutualMatches возвращает пары, где обе стороны выбрали друг друга.
// Используется административными отчетами.
func (s *Store) ListMutualMatches() ([]models.Match, error) {
	query := `
        SELECT ` + matchColumns + ` FROM matches
        WHERE customer_decision = $1 AND executor_decision = $1
        ORDER BY id`
	matches, err := s.queryMatches(query, constants.DECISION_LIKED)
	if err != nil {
		log.Printf("ListMutualMatches: ошибка запроса взаимных пар: %v", err)
		return nil, fmt.Errorf("ошибка получения взаимных пар: %w", err)
	}
	return matches, nil
}
