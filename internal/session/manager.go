package session

import (
	"log"
	"sync"

	"Proektbot/internal/constants"
)

// Manager хранит состояния диалогов пользователей и черновики многошаговых
// процессов. Ключ везде chatID.
// Manager holds user dialog states and drafts of multi-step flows.
type Manager struct {
	mu          sync.RWMutex
	userStates  map[int64]string
	userHistory map[int64][]string
	lastMessage map[int64]int // ID последнего сообщения бота в чате, чтобы редактировать его вместо отправки нового

	draftsMu      sync.RWMutex
	regDrafts     map[int64]*RegistrationDraft
	orderSessions map[int64]*OrderSession
	ratingDrafts  map[int64]*RatingDraft
}

// NewManager создает и возвращает новый менеджер сессий.
func NewManager() *Manager {
	return &Manager{
		userStates:    make(map[int64]string),
		userHistory:   make(map[int64][]string),
		lastMessage:   make(map[int64]int),
		regDrafts:     make(map[int64]*RegistrationDraft),
		orderSessions: make(map[int64]*OrderSession),
		ratingDrafts:  make(map[int64]*RatingDraft),
	}
}

// GetState возвращает текущее состояние пользователя.
// Если состояние не установлено, возвращает STATE_IDLE.
func (m *Manager) GetState(chatID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.userStates[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState устанавливает новое состояние пользователя и добавляет его в историю.
func (m *Manager) SetState(chatID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[chatID] = state
	history := m.userHistory[chatID]
	if len(history) == 0 || history[len(history)-1] != state {
		m.userHistory[chatID] = append(history, state)
	}
	log.Printf("Manager.SetState: chatID %d -> %s", chatID, state)
}

// PopState возвращает пользователя к предыдущему состоянию в истории.
// Если история исчерпана, возвращает STATE_IDLE.
func (m *Manager) PopState(chatID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := m.userHistory[chatID]
	if len(history) > 1 {
		m.userHistory[chatID] = history[:len(history)-1]
		newState := m.userHistory[chatID][len(m.userHistory[chatID])-1]
		m.userStates[chatID] = newState
		return newState
	}
	m.userStates[chatID] = constants.STATE_IDLE
	m.userHistory[chatID] = []string{constants.STATE_IDLE}
	return constants.STATE_IDLE
}

// ResetState сбрасывает состояние и историю пользователя к STATE_IDLE.
func (m *Manager) ResetState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[chatID] = constants.STATE_IDLE
	m.userHistory[chatID] = []string{constants.STATE_IDLE}
}

// GetLastMessageID возвращает ID последнего сообщения бота в чате (0, если нет).
func (m *Manager) GetLastMessageID(chatID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastMessage[chatID]
}

// SetLastMessageID запоминает ID последнего сообщения бота в чате.
func (m *Manager) SetLastMessageID(chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMessage[chatID] = messageID
}
