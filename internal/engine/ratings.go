package engine

import (
	"errors"
	"log"
)

// AddRating сохраняет оценку контрагента по заказу. Ключ (заказ, от кого,
// кому): повторная отправка перезаписывает звезды и отзыв. Оценивать может
// только участник заказа и только свою противоположную сторону.
func (e *Engine) AddRating(actorID, orderID, toUserID int64, stars int, review string) error {
	if stars < 1 || stars > 5 {
		return errors.New("оценка должна быть от 1 до 5")
	}
	if _, err := e.requireUser(actorID); err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}

	fromCustomer := order.CustomerID == actorID && order.IsAssignedTo(toUserID)
	fromExecutor := order.IsAssignedTo(actorID) && order.CustomerID == toUserID
	if !fromCustomer && !fromExecutor {
		return ErrUnauthorized
	}

	if err := e.store.UpsertRating(orderID, actorID, toUserID, stars, review); err != nil {
		return err
	}
	log.Printf("AddRating: заказ #%d, %d -> %d: %d звезд.", orderID, actorID, toUserID, stars)
	return nil
}

// RatingSummary возвращает среднюю оценку и количество оценок пользователя.
// Без оценок — (0, 0), деления на ноль не происходит.
func (e *Engine) RatingSummary(userID int64) (float64, int, error) {
	return e.store.RatingSummary(userID)
}
