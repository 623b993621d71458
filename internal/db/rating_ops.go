package db

import (
	"fmt"
	"log"

	"Proektbot/internal/models"
)

// UpsertRating сохраняет оценку по ключу (заказ, от кого, кому).
// Повторная оценка замещает прежнюю.
func (s *Store) UpsertRating(orderID, fromUserID, toUserID int64, stars int, review string) error {
	query := `
        INSERT INTO ratings (order_id, from_user_id, to_user_id, stars, review, created_at)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
        ON CONFLICT (order_id, from_user_id, to_user_id) DO UPDATE SET
            stars = EXCLUDED.stars,
            review = EXCLUDED.review,
            created_at = NOW()`
	_, err := s.db.Exec(query, orderID, fromUserID, toUserID, stars, review)
	if err != nil {
		log.Printf("UpsertRating: ошибка сохранения оценки (заказ %d, от %d, кому %d): %v", orderID, fromUserID, toUserID, err)
		return fmt.Errorf("ошибка сохранения оценки: %w", mapConstraintErr(err))
	}
	log.Printf("UpsertRating: оценка %d сохранена (заказ %d, от %d, кому %d).", stars, orderID, fromUserID, toUserID)
	return nil
}

// RatingSummary возвращает среднюю оценку и количество оценок пользователя.
func (s *Store) RatingSummary(userID int64) (float64, int, error) {
	var avg float64
	var count int
	query := `SELECT COALESCE(AVG(stars), 0), COUNT(*) FROM ratings WHERE to_user_id = $1`
	err := s.db.QueryRow(query, userID).Scan(&avg, &count)
	if err != nil {
		log.Printf("RatingSummary: ошибка подсчета рейтинга пользователя ID %d: %v", userID, err)
		return 0, 0, fmt.Errorf("ошибка подсчета рейтинга: %w", err)
	}
	return avg, count, nil
}

// ListRatings возвращает все оценки для административного отчета.
func (s *Store) ListRatings() ([]models.Rating, error) {
	query := `
        SELECT id, order_id, from_user_id, to_user_id, stars, review, created_at
        FROM ratings ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("ListRatings: ошибка запроса оценок: %v", err)
		return nil, fmt.Errorf("ошибка получения оценок: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.OrderID, &r.FromUserID, &r.ToUserID, &r.Stars, &r.Review, &r.CreatedAt); err != nil {
			log.Printf("ListRatings: ошибка сканирования строки: %v", err)
			return nil, fmt.Errorf("ошибка чтения оценки: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
