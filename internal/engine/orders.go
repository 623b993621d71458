package engine

import (
	"errors"
	"log"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/notify"
)

// CreateOrder создает заказ от имени заказчика: статус open, исполнитель
// не назначен. Содержимое черновика уже проверено презентационным слоем.
func (e *Engine) CreateOrder(customerID int64, draft models.OrderDraft) (*models.Order, error) {
	if draft.Name == "" {
		return nil, errors.New("наименование заказа не может быть пустым")
	}
	customer, err := e.requireUser(customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsCustomer {
		return nil, ErrUnauthorized
	}
	order, err := e.store.CreateOrder(customerID, draft)
	if err != nil {
		return nil, err
	}
	log.Printf("CreateOrder: заказ #%d создан заказчиком %d.", order.ID, customerID)
	return order, nil
}

// EditOrder заменяет содержимое заказа. Разрешено только владельцу и только
// пока заказ не закрыт; статус при этом не меняется.
func (e *Engine) EditOrder(actorID, orderID int64, draft models.OrderDraft) error {
	if draft.Name == "" {
		return errors.New("наименование заказа не может быть пустым")
	}
	if _, err := e.requireUser(actorID); err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}
	if order.CustomerID != actorID {
		return ErrUnauthorized
	}
	if order.Status == constants.STATUS_CLOSED {
		return ErrInvalidTransition
	}
	return e.store.UpdateOrderContent(orderID, draft)
}

// Assign закрепляет исполнителя за заказом. Требования: действует владелец,
// по паре есть взаимный liked, заказ открыт и без исполнителя. Проверка
// статуса и занятости выполняется атомарно на стороне хранилища; проигравший
// гонку получает ErrInvalidTransition.
func (e *Engine) Assign(actorID, orderID, executorID int64) error {
	if _, err := e.requireUser(actorID); err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}
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
	if !executor.IsExecutor || executor.Blocked {
		return ErrInvalidTransition
	}
	match, err := e.store.GetMatch(orderID, executorID)
	if err != nil {
		return err
	}
	if match == nil || !match.IsMutualLike() {
		return ErrInvalidTransition
	}
	ok, err := e.store.AssignExecutorIf(orderID, executorID, constants.STATUS_OPEN)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	log.Printf("Assign: исполнитель %d закреплен за заказом #%d.", executorID, orderID)
	e.notifyUser(executorID, notify.KindExecutorAssigned, notify.Event{
		OrderID:       orderID,
		OrderName:     order.Name,
		CounterpartID: order.CustomerID,
	})
	return nil
}

// RequestClose запускает закрытие заказа. Из open заказ переходит в
// closing_by_customer или closing_by_executor в зависимости от инициатора;
// заказ без назначенного исполнителя заказчик закрывает сразу, подтверждать
// некому.
func (e *Engine) RequestClose(actorID, orderID int64, actingRole string) error {
	if _, err := e.requireUser(actorID); err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}

	switch actingRole {
	case constants.ROLE_CUSTOMER:
		if order.CustomerID != actorID {
			return ErrUnauthorized
		}
		if !order.AssignedExecutorID.Valid {
			ok, err := e.store.SetOrderStatusIfUnassigned(orderID, constants.STATUS_OPEN, constants.STATUS_CLOSED)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidTransition
			}
			log.Printf("RequestClose: заказ #%d без исполнителя закрыт заказчиком %d.", orderID, actorID)
			return nil
		}
		ok, err := e.store.SetOrderStatusIf(orderID, constants.STATUS_OPEN, constants.STATUS_CLOSING_BY_CUSTOMER)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		e.notifyUser(order.AssignedExecutorID.Int64, notify.KindCloseRequested, notify.Event{
			OrderID:       orderID,
			OrderName:     order.Name,
			CounterpartID: order.CustomerID,
			InitiatorRole: constants.ROLE_CUSTOMER,
		})
		return nil

	case constants.ROLE_EXECUTOR:
		if !order.IsAssignedTo(actorID) {
			return ErrUnauthorized
		}
		ok, err := e.store.SetOrderStatusIf(orderID, constants.STATUS_OPEN, constants.STATUS_CLOSING_BY_EXECUTOR)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		e.notifyUser(order.CustomerID, notify.KindCloseRequested, notify.Event{
			OrderID:       orderID,
			OrderName:     order.Name,
			CounterpartID: actorID,
			InitiatorRole: constants.ROLE_EXECUTOR,
		})
		return nil
	}
	return ErrUnauthorized
}

// ConfirmClose завершает рукопожатие закрытия. Подтвердить может только
// противоположная сторона: запрос заказчика подтверждает исполнитель и
// наоборот. После перехода в closed обеим сторонам предлагается оценить
// друг друга.
func (e *Engine) ConfirmClose(actorID, orderID int64, actingRole string) error {
	if _, err := e.requireUser(actorID); err != nil {
		return err
	}
	order, err := e.requireOrder(orderID)
	if err != nil {
		return err
	}

	var expectStatus string
	switch actingRole {
	case constants.ROLE_EXECUTOR:
		if !order.IsAssignedTo(actorID) {
			return ErrUnauthorized
		}
		expectStatus = constants.STATUS_CLOSING_BY_CUSTOMER
	case constants.ROLE_CUSTOMER:
		if order.CustomerID != actorID {
			return ErrUnauthorized
		}
		expectStatus = constants.STATUS_CLOSING_BY_EXECUTOR
	default:
		return ErrUnauthorized
	}

	ok, err := e.store.SetOrderStatusIf(orderID, expectStatus, constants.STATUS_CLOSED)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	log.Printf("ConfirmClose: заказ #%d закрыт (подтвердил %s %d).", orderID, actingRole, actorID)

	if order.AssignedExecutorID.Valid {
		executorID := order.AssignedExecutorID.Int64
		e.notifyUser(order.CustomerID, notify.KindRatePrompt, notify.Event{
			OrderID:       orderID,
			OrderName:     order.Name,
			CounterpartID: executorID,
		})
		e.notifyUser(executorID, notify.KindRatePrompt, notify.Event{
			OrderID:       orderID,
			OrderName:     order.Name,
			CounterpartID: order.CustomerID,
		})
	}
	return nil
}
