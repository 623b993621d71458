package session

import (
	"testing"

	"Proektbot/internal/constants"
)

func TestManagerStateHistory(t *testing.T) {
	m := NewManager()
	chatID := int64(100)

	if got := m.GetState(chatID); got != constants.STATE_IDLE {
		t.Errorf("начальное состояние = %q, ожидалось idle", got)
	}

	m.SetState(chatID, constants.STATE_CUST_REG_FIRST_NAME)
	m.SetState(chatID, constants.STATE_CUST_REG_LAST_NAME)
	// Повтор того же состояния не раздувает историю.
	m.SetState(chatID, constants.STATE_CUST_REG_LAST_NAME)

	if got := m.GetState(chatID); got != constants.STATE_CUST_REG_LAST_NAME {
		t.Errorf("текущее состояние = %q", got)
	}

	if got := m.PopState(chatID); got != constants.STATE_CUST_REG_FIRST_NAME {
		t.Errorf("PopState = %q, ожидался возврат к имени", got)
	}
	if got := m.PopState(chatID); got != constants.STATE_IDLE {
		t.Errorf("PopState на исчерпанной истории = %q, ожидался idle", got)
	}

	m.SetState(chatID, constants.STATE_ORDER_NAME)
	m.ResetState(chatID)
	if got := m.GetState(chatID); got != constants.STATE_IDLE {
		t.Errorf("после ResetState состояние = %q", got)
	}
}

func TestManagerDrafts(t *testing.T) {
	m := NewManager()
	chatID := int64(200)

	draft := m.GetRegistrationDraft(chatID)
	if draft == nil {
		t.Fatal("черновик регистрации должен создаваться по требованию")
	}
	draft.FirstName = "Иван"
	if m.GetRegistrationDraft(chatID).FirstName != "Иван" {
		t.Error("черновик не сохраняется между обращениями")
	}
	m.ClearRegistrationDraft(chatID)
	if m.GetRegistrationDraft(chatID).FirstName != "" {
		t.Error("очистка черновика не сработала")
	}

	sess := m.GetOrderSession(chatID)
	sess.Draft.Name = "Проект"
	if m.GetOrderSession(chatID).Draft.Name != "Проект" {
		t.Error("сессия заказа не сохраняется между обращениями")
	}
	m.ClearOrderSession(chatID)
	if m.GetOrderSession(chatID).Draft.Name != "" {
		t.Error("очистка сессии заказа не сработала")
	}
}

func TestManagerLastMessageID(t *testing.T) {
	m := NewManager()
	if got := m.GetLastMessageID(300); got != 0 {
		t.Errorf("ID без записи = %d, ожидался 0", got)
	}
	m.SetLastMessageID(300, 42)
	if got := m.GetLastMessageID(300); got != 42 {
		t.Errorf("ID = %d, ожидался 42", got)
	}
}
