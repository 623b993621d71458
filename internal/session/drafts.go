package session

import (
	"Proektbot/internal/models"
)

// RegistrationDraft — черновик многошаговой регистрации. Общие поля имени
// используются обеими ролями; анкетные поля заполняются только исполнителем.
type RegistrationDraft struct {
	Role       string // какая роль регистрируется
	FirstName  string
	LastName   string
	OrgName    string
	Experience string
	ResumeLink string
	ResumeText string
	DocTypes   models.StringList
	ConstrTyps models.StringList
	SectCap    models.StringList
	SectLin    models.StringList
}

// OrderSession — черновик создания или редактирования заказа.
// EditingOrderID != 0 означает редактирование существующего заказа.
type OrderSession struct {
	EditingOrderID int64
	Draft          models.OrderDraft
}

// RatingDraft — контекст ожидаемого текстового отзыва после выбора звезд.
type RatingDraft struct {
	OrderID  int64
	ToUserID int64
	Stars    int
}

// GetRegistrationDraft возвращает черновик регистрации, создавая его при отсутствии.
func (m *Manager) GetRegistrationDraft(chatID int64) *RegistrationDraft {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	draft, ok := m.regDrafts[chatID]
	if !ok {
		draft = &RegistrationDraft{}
		m.regDrafts[chatID] = draft
	}
	return draft
}

// ClearRegistrationDraft удаляет черновик регистрации пользователя.
func (m *Manager) ClearRegistrationDraft(chatID int64) {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	delete(m.regDrafts, chatID)
}

// GetOrderSession возвращает черновик заказа, создавая его при отсутствии.
func (m *Manager) GetOrderSession(chatID int64) *OrderSession {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	sess, ok := m.orderSessions[chatID]
	if !ok {
		sess = &OrderSession{}
		m.orderSessions[chatID] = sess
	}
	return sess
}

// ClearOrderSession удаляет черновик заказа пользователя.
func (m *Manager) ClearOrderSession(chatID int64) {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	delete(m.orderSessions, chatID)
}

// SetRatingDraft запоминает контекст оценки до получения текстового отзыва.
func (m *Manager) SetRatingDraft(chatID int64, draft *RatingDraft) {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	m.ratingDrafts[chatID] = draft
}

// GetRatingDraft возвращает контекст оценки или nil.
func (m *Manager) GetRatingDraft(chatID int64) *RatingDraft {
	m.draftsMu.RLock()
	defer m.draftsMu.RUnlock()
	return m.ratingDrafts[chatID]
}

// ClearRatingDraft удаляет контекст оценки пользователя.
func (m *Manager) ClearRatingDraft(chatID int64) {
	m.draftsMu.Lock()
	defer m.draftsMu.Unlock()
	delete(m.ratingDrafts, chatID)
}
