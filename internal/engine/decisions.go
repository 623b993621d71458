package engine

import (
	"errors"
	"log"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/notify"
)

// Decide записывает решение одной стороны по паре (заказ, исполнитель).
// Строка реестра создается при первом решении; каждая сторона пишет только
// свое поле, решение второй стороны не затирается. Повтор того же решения —
// no-op, пересмотр (declined→liked и обратно) разрешен.
func (e *Engine) Decide(actorID, orderID, executorID int64, side, decision string) error {
	if decision != constants.DECISION_LIKED && decision != constants.DECISION_DECLINED {
		return errors.New("недопустимое значение решения")
	}
	actor, err := e.requireUser(actorID)
	if err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}

	switch side {
	case constants.ROLE_CUSTOMER:
		if order.CustomerID != actorID {
			return ErrUnauthorized
		}
		executor, err := e.store.GetUserByID(executorID)
		if err != nil {
			return err
		}
		if executor == nil {
			return ErrNotFound
		}
		if !executor.IsExecutor {
			return ErrUnauthorized
		}
	case constants.ROLE_EXECUTOR:
		if actorID != executorID || !actor.IsExecutor {
			return ErrUnauthorized
		}
		if order.CustomerID == actorID {
			return ErrUnauthorized
		}
	default:
		return ErrUnauthorized
	}

	if err := e.store.UpsertDecision(orderID, executorID, side, decision); err != nil {
		return err
	}
	log.Printf("Decide: заказ #%d, исполнитель %d: %s -> %s.", orderID, executorID, side, decision)

	// Контрагент узнает только о положительном решении.
	if decision == constants.DECISION_LIKED {
		if side == constants.ROLE_CUSTOMER {
			e.notifyUser(executorID, notify.KindExecutorChosen, notify.Event{
				OrderID:       orderID,
				OrderName:     order.Name,
				CounterpartID: order.CustomerID,
			})
		} else {
			e.notifyUser(order.CustomerID, notify.KindExecutorResponded, notify.Event{
				OrderID:       orderID,
				OrderName:     order.Name,
				CounterpartID: executorID,
			})
		}
	}
	return nil
}

// DecisionPair возвращает строку реестра по паре или ErrNotFound.
func (e *Engine) DecisionPair(orderID, executorID int64) (*models.Match, error) {
	match, err := e.store.GetMatch(orderID, executorID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

// MutualLikes возвращает пары заказа, где обе стороны поставили liked.
func (e *Engine) MutualLikes(orderID int64) ([]models.Match, error) {
	return e.filterOrderMatches(orderID, func(m *models.Match) bool {
		return m.IsMutualLike()
	})
}

// CustomerLikes возвращает пары, принятые заказчиком (ответ исполнителя любой).
func (e *Engine) CustomerLikes(orderID int64) ([]models.Match, error) {
	return e.filterOrderMatches(orderID, func(m *models.Match) bool {
		return m.CustomerDecision.String == constants.DECISION_LIKED
	})
}

// CustomerDeclines возвращает пары, отклоненные заказчиком.
func (e *Engine) CustomerDeclines(orderID int64) ([]models.Match, error) {
	return e.filterOrderMatches(orderID, func(m *models.Match) bool {
		return m.CustomerDecision.String == constants.DECISION_DECLINED
	})
}

func (e *Engine) filterOrderMatches(orderID int64, keep func(*models.Match) bool) ([]models.Match, error) {
	matches, err := e.store.ListMatchesForOrder(orderID)
	if err != nil {
		return nil, err
	}
	var result []models.Match
	for i := range matches {
		if keep(&matches[i]) {
			result = append(result, matches[i])
		}
	}
	return result, nil
}
