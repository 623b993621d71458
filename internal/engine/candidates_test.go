package engine

import (
	"errors"
	"testing"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

func TestNextExecutorCandidate(t *testing.T) {
	eng, store, order := newTestEngine(t)

	// Еще два совместимых исполнителя и один несовместимый.
	store.addUser(3, false, true, false)
	store.addProfile(3, []string{constants.CONSTRUCTION_CAPITAL}, []string{"АР"}, nil)
	store.addUser(4, false, true, false)
	store.addProfile(4, []string{constants.CONSTRUCTION_CAPITAL}, []string{"АР", "КР"}, nil)
	store.addUser(5, false, true, false)
	store.addProfile(5, []string{constants.CONSTRUCTION_LINEAR}, nil, []string{"АД"})

	// Порядок перебора стабилен: наименьший user_id первым.
	candidate, err := eng.NextExecutorCandidate(customerID, order.ID)
	if err != nil {
		t.Fatalf("NextExecutorCandidate: %v", err)
	}
	if candidate == nil || candidate.UserID != executorID {
		t.Fatalf("первый кандидат = %+v, ожидался user %d", candidate, executorID)
	}

	// Повторный вызов без новых решений возвращает того же кандидата.
	again, _ := eng.NextExecutorCandidate(customerID, order.ID)
	if again == nil || again.UserID != candidate.UserID {
		t.Error("перебор кандидатов недетерминирован")
	}

	// Решенная заказчиком пара скрывается навсегда.
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_DECLINED)
	candidate, _ = eng.NextExecutorCandidate(customerID, order.ID)
	if candidate == nil || candidate.UserID != 3 {
		t.Fatalf("после отказа кандидат = %+v, ожидался user 3", candidate)
	}

	// Пара, отклоненная самим исполнителем, тоже не показывается.
	if err := eng.Decide(3, order.ID, 3, constants.ROLE_EXECUTOR, constants.DECISION_DECLINED); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	candidate, _ = eng.NextExecutorCandidate(customerID, order.ID)
	if candidate == nil || candidate.UserID != 4 {
		t.Fatalf("после отказа исполнителя кандидат = %+v, ожидался user 4", candidate)
	}

	// Заблокированный исполнитель выпадает из выдачи.
	store.users[4].Blocked = true
	store.profiles[4].Blocked = true
	candidate, _ = eng.NextExecutorCandidate(customerID, order.ID)
	if candidate != nil {
		t.Errorf("кандидаты должны закончиться, получен user %d", candidate.UserID)
	}
}

func TestNextExecutorCandidateAssignedOrder(t *testing.T) {
	eng, _, order := newTestEngine(t)
	assignOrder(t, eng, order.ID)

	candidate, err := eng.NextExecutorCandidate(customerID, order.ID)
	if err != nil {
		t.Fatalf("NextExecutorCandidate: %v", err)
	}
	if candidate != nil {
		t.Error("для заказа с назначенным исполнителем кандидатов нет")
	}
}

func TestNextExecutorCandidateUnauthorized(t *testing.T) {
	eng, store, order := newTestEngine(t)
	stranger := store.addUser(7, true, false, false)

	_, err := eng.NextExecutorCandidate(stranger.ID, order.ID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("просмотр чужого заказа: %v, ожидался ErrUnauthorized", err)
	}
}

func TestNextOrderCandidate(t *testing.T) {
	eng, store, first := newTestEngine(t)

	// Несовместимый заказ и собственный заказ исполнителя.
	if _, err := eng.CreateOrder(customerID, models.OrderDraft{
		Name:              "Дорога",
		ConstructionTypes: models.StringList{constants.CONSTRUCTION_LINEAR},
		SectionsLinear:    models.StringList{"АД"},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	store.users[executorID].IsCustomer = true
	own, err := eng.CreateOrder(executorID, models.OrderDraft{
		Name:              "Собственный заказ",
		ConstructionTypes: models.StringList{constants.CONSTRUCTION_CAPITAL},
		SectionsCapital:   models.StringList{"АР"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	candidate, err := eng.NextOrderCandidate(executorID)
	if err != nil {
		t.Fatalf("NextOrderCandidate: %v", err)
	}
	if candidate == nil || candidate.ID != first.ID {
		t.Fatalf("кандидат = %+v, ожидался заказ #%d", candidate, first.ID)
	}
	if candidate.ID == own.ID {
		t.Error("собственный заказ не должен предлагаться")
	}

	// Решенный исполнителем заказ скрывается.
	decide(t, eng, executorID, first.ID, constants.ROLE_EXECUTOR, constants.DECISION_DECLINED)
	candidate, _ = eng.NextOrderCandidate(executorID)
	if candidate != nil {
		t.Errorf("заказы должны закончиться, получен #%d", candidate.ID)
	}
}

func TestNextOrderCandidateRequiresProfile(t *testing.T) {
	eng, store, _ := newTestEngine(t)
	noProfile := store.addUser(8, false, true, false)

	_, err := eng.NextOrderCandidate(noProfile.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("подбор без анкеты: %v, ожидался ErrNotFound", err)
	}

	_, err = eng.NextOrderCandidate(customerID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("подбор не-исполнителем: %v, ожидался ErrUnauthorized", err)
	}
}

func TestNextOrderCandidateSkipsAssigned(t *testing.T) {
	eng, store, order := newTestEngine(t)

	// Заказ закреплен за другим исполнителем и выпадает из ленты.
	store.addUser(3, false, true, false)
	store.addProfile(3, []string{constants.CONSTRUCTION_CAPITAL}, []string{"АР"}, nil)
	decide(t, eng, customerID, order.ID, constants.ROLE_CUSTOMER, constants.DECISION_LIKED)
	decide(t, eng, executorID, order.ID, constants.ROLE_EXECUTOR, constants.DECISION_LIKED)
	if err := eng.Assign(customerID, order.ID, executorID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	candidate, err := eng.NextOrderCandidate(3)
	if err != nil {
		t.Fatalf("NextOrderCandidate: %v", err)
	}
	if candidate != nil {
		t.Errorf("занятый заказ не должен предлагаться, получен #%d", candidate.ID)
	}
}
