package engine

import (
	"errors"
	"testing"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

const (
	customerID = int64(1)
	executorID = int64(2)
)

// newTestEngine поднимает движок на фейковом хранилище с заказчиком,
// исполнителем с совместимой анкетой и одним открытым заказом.
func newTestEngine(t *testing.T) (*Engine, *fakeStore, *models.Order) {
	t.Helper()
	store := newFakeStore()
	store.addUser(customerID, true, false, false)
	store.addUser(executorID, false, true, false)
	store.addProfile(executorID,
		[]string{constants.CONSTRUCTION_CAPITAL},
		[]string{"АР", "КР"},
		nil,
	)

	eng := New(store, nil)
	order, err := eng.CreateOrder(customerID, models.OrderDraft{
		Name:              "Проектирование склада",
		ConstructionTypes: models.StringList{constants.CONSTRUCTION_CAPITAL},
		SectionsCapital:   models.StringList{"АР"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return eng, store, order
}

func decide(t *testing.T, eng *Engine, actorID, orderID int64, side, decision string) {
	t.Helper()
	if err := eng.Decide(actorID, orderID, executorID, side, decision); err != nil {
		t.Fatalf("Decide(%s, %s): %v", side, decision, err)
	}
}

func TestDecideMutualLike(t *testing.T) {
	eng, _, order := newTestEngine(t)

	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)

	match, err := eng.DecisionPair(order.ID, executorID)
	if err != nil {
		t.Fatalf("DecisionPair: %v", err)
	}
	if match.CustomerDecision.String != constants.DECISION_LIKED {
		t.Errorf("решение заказчика = %q, ожидалось liked", match.CustomerDecision.String)
	}
	if match.ExecutorDecision.Valid {
		t.Error("решение исполнителя не должно быть заполнено")
	}
	if match.IsMutualLike() {
		t.Error("взаимность до ответа исполнителя невозможна")
	}

	decide(t, eng, executorID, order.ID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)

	match, err = eng.DecisionPair(order.ID, executorID)
	if err != nil {
		t.Fatalf("DecisionPair: %v", err)
	}
	if !match.IsMutualLike() {
		t.Error("после двух liked пара должна быть взаимной")
	}
}

func TestDecideDoesNotClobberOtherSide(t *testing.T) {
	eng, _, order := newTestEngine(t)

	decide(t, eng, executorID, order.ID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_DECLINED)

	match, err := eng.DecisionPair(order.ID, executorID)
	if err != nil {
		t.Fatalf("DecisionPair: %v", err)
	}
	if match.ExecutorDecision.String != constants.DECISION_LIKED {
		t.Errorf("решение исполнителя затерто: %q", match.ExecutorDecision.String)
	}
	if match.CustomerDecision.String != constants.DECISION_DECLINED {
		t.Errorf("решение заказчика = %q, ожидалось declined", match.CustomerDecision.String)
	}
}

func TestDecideRevision(t *testing.T) {
	eng, store, order := newTestEngine(t)

	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_DECLINED)
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	// Повтор того же решения — no-op, новой строки не появляется.
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)

	if len(store.matches) != 1 {
		t.Fatalf("строк реестра = %d, ожидалась одна", len(store.matches))
	}
	match, _ := eng.DecisionPair(order.ID, executorID)
	if match.CustomerDecision.String != constants.DECISION_LIKED {
		t.Errorf("после пересмотра решение = %q, ожидалось liked", match.CustomerDecision.String)
	}
}

func TestDecideValidation(t *testing.T) {
	eng, store, order := newTestEngine(t)

	if err := eng.Decide(customerID, order.ID, executorID, constants.ROLE_CUSTOMER, "maybe"); err == nil {
		t.Error("недопустимое значение решения должно отклоняться")
	}

	// Чужой заказ нельзя решать за заказчика.
	stranger := store.addUser(7, true, false, false)
	err := eng.Decide(stranger.ID, order.ID, executorID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("решение не-владельца: %v, ожидался ErrUnauthorized", err)
	}

	// Исполнитель решает только за себя.
	err = eng.Decide(stranger.ID, order.ID, executorID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("решение за другого исполнителя: %v, ожидался ErrUnauthorized", err)
	}

	// Заблокированный пользователь не действует.
	store.users[executorID].Blocked = true
	err = eng.Decide(executorID, order.ID, executorID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("решение заблокированного: %v, ожидался ErrUnauthorized", err)
	}
}

func TestAssignRequiresMutualLike(t *testing.T) {
	eng, _, order := newTestEngine(t)

	err := eng.Assign(customerID, order.ID, executorID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("назначение без решений: %v, ожидался ErrInvalidTransition", err)
	}

	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	err = eng.Assign(customerID, order.ID, executorID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("назначение без ответа исполнителя: %v, ожидался ErrInvalidTransition", err)
	}

	decide(t, eng, executorID, order.ID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	if err := eng.Assign(customerID, order.ID, executorID); err != nil {
		t.Fatalf("назначение при взаимном liked: %v", err)
	}

	got, _ := eng.store.GetOrder(order.ID)
	if !got.IsAssignedTo(executorID) {
		t.Error("исполнитель не закреплен за заказом")
	}

	// Повторное назначение проигрывает условный переход.
	err = eng.Assign(customerID, order.ID, executorID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("повторное назначение: %v, ожидался ErrInvalidTransition", err)
	}
}

func TestAssignUnauthorized(t *testing.T) {
	eng, store, order := newTestEngine(t)
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	decide(t, eng, executorID, order.ID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)

	stranger := store.addUser(7, true, false, false)
	err := eng.Assign(stranger.ID, order.ID, executorID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("назначение не-владельцем: %v, ожидался ErrUnauthorized", err)
	}
}

// assignOrder доводит пару до назначения.
func assignOrder(t *testing.T, eng *Engine, orderID int64) {
	t.Helper()
	decide(t, eng, customerID, orderID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	decide(t, eng, executorID, orderID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	if err := eng.Assign(customerID, orderID, executorID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
}

func TestCloseHandshakeCustomerInitiates(t *testing.T) {
	eng, store, order := newTestEngine(t)
	assignOrder(t, eng, order.ID)

	if err := eng.RequestClose(customerID, order.ID, constants.ROLE_CUSTOMER); err != nil {
		t.Fatalf("RequestClose: %v", err)
	}
	if got := store.orders[order.ID].Status; got != constants.STATUS_CLOSING_BY_CUSTOMER {
		t.Fatalf("статус = %q, ожидался closing_by_customer", got)
	}

	// Инициатор не подтверждает собственный запрос.
	err := eng.ConfirmClose(customerID, order.ID, constants.ROLE_CUSTOMER)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("подтверждение инициатором: %v, ожидался ErrInvalidTransition", err)
	}

	if err := eng.ConfirmClose(executorID, order.ID, constants.ROLE_EXECUTOR); err != nil {
		t.Fatalf("ConfirmClose исполнителем: %v", err)
	}
	if got := store.orders[order.ID].Status; got != constants.STATUS_CLOSED {
		t.Errorf("статус = %q, ожидался closed", got)
	}

	// Из closed переходов нет.
	err = eng.RequestClose(customerID, order.ID, constants.ROLE_CUSTOMER)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("закрытие закрытого: %v, ожидался ErrInvalidTransition", err)
	}
}

func TestCloseHandshakeExecutorInitiates(t *testing.T) {
	eng, store, order := newTestEngine(t)
	assignOrder(t, eng, order.ID)

	if err := eng.RequestClose(executorID, order.ID, constants.ROLE_EXECUTOR); err != nil {
		t.Fatalf("RequestClose: %v", err)
	}
	if got := store.orders[order.ID].Status; got != constants.STATUS_CLOSING_BY_EXECUTOR {
		t.Fatalf("статус = %q, ожидался closing_by_executor", got)
	}

	err := eng.ConfirmClose(executorID, order.ID, constants.ROLE_EXECUTOR)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("подтверждение инициатором: %v, ожидался ErrInvalidTransition", err)
	}

	if err := eng.ConfirmClose(customerID, order.ID, constants.ROLE_CUSTOMER); err != nil {
		t.Fatalf("ConfirmClose заказчиком: %v", err)
	}
	if got := store.orders[order.ID].Status; got != constants.STATUS_CLOSED {
		t.Errorf("статус = %q, ожидался closed", got)
	}
}

func TestCustomerClosesUnassignedImmediately(t *testing.T) {
	eng, store, order := newTestEngine(t)

	if err := eng.RequestClose(customerID, order.ID, constants.ROLE_CUSTOMER); err != nil {
		t.Fatalf("RequestClose: %v", err)
	}
	if got := store.orders[order.ID].Status; got != constants.STATUS_CLOSED {
		t.Errorf("заказ без исполнителя закрывается сразу, статус = %q", got)
	}
}

func TestExecutorCannotCloseForeignOrder(t *testing.T) {
	eng, _, order := newTestEngine(t)

	err := eng.RequestClose(executorID, order.ID, constants.ROLE_EXECUTOR)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("закрытие неназначенным исполнителем: %v, ожидался ErrUnauthorized", err)
	}
}

func TestEditOrder(t *testing.T) {
	eng, store, order := newTestEngine(t)

	draft := models.OrderDraft{
		Name:              "Проектирование склада, ред. 2",
		ConstructionTypes: models.StringList{constants.CONSTRUCTION_CAPITAL},
		SectionsCapital:   models.StringList{"КР"},
		Price:             "договорная",
	}
	if err := eng.EditOrder(customerID, order.ID, draft); err != nil {
		t.Fatalf("EditOrder: %v", err)
	}
	got := store.orders[order.ID]
	if got.Name != draft.Name || got.Price.String != "договорная" {
		t.Error("содержимое заказа не обновилось")
	}
	if got.Status != constants.STATUS_OPEN {
		t.Errorf("редактирование не должно менять статус, получен %q", got.Status)
	}

	stranger := store.addUser(7, true, false, false)
	if err := eng.EditOrder(stranger.ID, order.ID, draft); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("редактирование не-владельцем: %v, ожидался ErrUnauthorized", err)
	}

	store.orders[order.ID].Status = constants.STATUS_CLOSED
	if err := eng.EditOrder(customerID, order.ID, draft); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("редактирование закрытого: %v, ожидался ErrInvalidTransition", err)
	}
}

func TestRatings(t *testing.T) {
	eng, store, order := newTestEngine(t)
	assignOrder(t, eng, order.ID)

	// Оценивать можно только контрагента по заказу.
	stranger := store.addUser(7, true, true, false)
	err := eng.AddRating(stranger.ID, order.ID, executorID, 5, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("оценка посторонним: %v, ожидался ErrUnauthorized", err)
	}
	err = eng.AddRating(customerID, order.ID, stranger.ID, 5, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("оценка постороннего: %v, ожидался ErrUnauthorized", err)
	}

	if err := eng.AddRating(customerID, order.ID, executorID, 0, ""); err == nil {
		t.Error("оценка вне диапазона 1..5 должна отклоняться")
	}

	if err := eng.AddRating(customerID, order.ID, executorID, 4, ""); err != nil {
		t.Fatalf("AddRating: %v", err)
	}
	if err := eng.AddRating(executorID, order.ID, customerID, 5, "отличный заказчик"); err != nil {
		t.Fatalf("AddRating (исполнитель): %v", err)
	}

	avg, count, err := eng.RatingSummary(executorID)
	if err != nil {
		t.Fatalf("RatingSummary: %v", err)
	}
	if count != 1 || avg != 4 {
		t.Errorf("сводка исполнителя = (%.1f, %d), ожидалось (4.0, 1)", avg, count)
	}

	// Повторная оценка по тому же ключу перезаписывает прежнюю.
	if err := eng.AddRating(customerID, order.ID, executorID, 2, "сорван срок"); err != nil {
		t.Fatalf("повторная оценка: %v", err)
	}
	avg, count, _ = eng.RatingSummary(executorID)
	if count != 1 || avg != 2 {
		t.Errorf("после перезаписи сводка = (%.1f, %d), ожидалось (2.0, 1)", avg, count)
	}
}

func TestRatingSummaryAverage(t *testing.T) {
	eng, store, _ := newTestEngine(t)
	store.ratings = []*fakeRating{
		{orderID: 1, fromUserID: 10, toUserID: executorID, stars: 5},
		{orderID: 2, fromUserID: 11, toUserID: executorID, stars: 4},
		{orderID: 3, fromUserID: 12, toUserID: executorID, stars: 4},
	}

	avg, count, err := eng.RatingSummary(executorID)
	if err != nil {
		t.Fatalf("RatingSummary: %v", err)
	}
	if count != 3 {
		t.Errorf("количество оценок = %d, ожидалось 3", count)
	}
	if avg < 4.33 || avg > 4.34 {
		t.Errorf("средняя = %v, ожидалось ~4.33", avg)
	}

	avg, count, _ = eng.RatingSummary(999)
	if avg != 0 || count != 0 {
		t.Errorf("сводка без оценок = (%v, %d), ожидалось (0, 0)", avg, count)
	}
}
