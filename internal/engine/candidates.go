package engine

import (
	"Proektbot/internal/constants"
	"Proektbot/internal/matching"
	"Proektbot/internal/models"
)

// NextExecutorCandidate возвращает следующую анкету исполнителя для заказа
// глазами заказчика, либо nil, когда кандидаты закончились. Исключаются:
// заблокированные; пары, по которым заказчик уже принимал любое решение;
// пары, отклоненные самим исполнителем; несовместимые анкеты. Для заказа
// с назначенным исполнителем кандидатов нет. Порядок перебора стабилен
// между вызовами при неизменном наборе решений.
//
// Смена решения контрагента не возвращает пару в выдачу: однажды решенная
// заказчиком пара скрыта навсегда.
func (e *Engine) NextExecutorCandidate(actorID, orderID int64) (*models.ExecutorProfile, error) {
	if _, err := e.requireUser(actorID); err != nil {
		return nil, err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actorID {
		return nil, ErrUnauthorized
	}
	if order.AssignedExecutorID.Valid {
		return nil, nil
	}

	matches, err := e.store.ListMatchesForOrder(orderID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool, len(matches))
	declinedByExecutor := make(map[int64]bool)
	for i := range matches {
		if matches[i].CustomerDecision.Valid {
			seen[matches[i].ExecutorID] = true
		}
		if matches[i].ExecutorDecision.String == constants.DECISION_DECLINED {
			declinedByExecutor[matches[i].ExecutorID] = true
		}
	}

	profiles, err := e.store.ListExecutorProfiles()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profile := &profiles[i]
		if profile.Blocked {
			continue
		}
		if seen[profile.UserID] || declinedByExecutor[profile.UserID] {
			continue
		}
		if !matching.Compatible(order, profile) {
			continue
		}
		return profile, nil
	}
	return nil, nil
}

// NextOrderCandidate возвращает следующий подходящий заказ глазами
// исполнителя, либо nil. Исключаются: заказы с назначенным исполнителем,
// собственные заказы, заказы, по которым исполнитель уже принимал решение,
// и несовместимые с анкетой.
func (e *Engine) NextOrderCandidate(executorID int64) (*models.Order, error) {
	actor, err := e.requireUser(executorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsExecutor {
		return nil, ErrUnauthorized
	}
	profile, err := e.store.GetExecutorProfile(executorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	matches, err := e.store.ListMatchesForExecutor(executorID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool, len(matches))
	for i := range matches {
		if matches[i].ExecutorDecision.Valid {
			seen[matches[i].OrderID] = true
		}
	}

	orders, err := e.store.ListOpenOrders()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		order := &orders[i]
		if order.AssignedExecutorID.Valid {
			continue
		}
		if order.CustomerID == executorID {
			continue
		}
		if seen[order.ID] {
			continue
		}
		if !matching.Compatible(order, profile) {
			continue
		}
		return order, nil
	}
	return nil, nil
}
