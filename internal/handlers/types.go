package handlers

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/config"
	"Proektbot/internal/db"
	"Proektbot/internal/engine"
	"Proektbot/internal/models"
	"Proektbot/internal/session"
	"Proektbot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые обработчикам.
// HandlerDependencies contains all dependencies required by handlers.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.Manager
	Store          *db.Store
	Engine         *engine.Engine
}

// BotHandler инкапсулирует логику обработки сообщений и коллбэков.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil || deps.Store == nil || deps.Engine == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// getUserByChat возвращает пользователя по chatID или nil, если он не
// зарегистрирован. Ошибки хранилища логируются.
func (bh *BotHandler) getUserByChat(chatID int64) *models.User {
	user, err := bh.Deps.Store.GetUserByTgID(chatID)
	if err != nil {
		log.Printf("getUserByChat: ошибка получения пользователя chatID %d: %v", chatID, err)
		return nil
	}
	return user
}

// sendMenu редактирует последнее сообщение бота в чате или отправляет новое,
// запоминая его ID для следующего редактирования.
func (bh *BotHandler) sendMenu(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	lastID := bh.Deps.SessionManager.GetLastMessageID(chatID)
	sent, err := telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, lastID, text, keyboard)
	if err != nil {
		return
	}
	bh.Deps.SessionManager.SetLastMessageID(chatID, sent.MessageID)
}

// sendMessage отправляет обычное сообщение без клавиатуры и без редактирования.
func (bh *BotHandler) sendMessage(chatID int64, text string) {
	if _, err := bh.Deps.BotClient.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("sendMessage: ошибка отправки сообщения chatID %d: %v", chatID, err)
	}
}

// deleteMessageHelper удаляет сообщение пользователя, чтобы не засорять чат.
func (bh *BotHandler) deleteMessageHelper(chatID int64, messageID int) {
	telegram_api.DeleteMessage(bh.Deps.BotClient, chatID, messageID)
}

// answerCallback закрывает "часики" на кнопке; текст необязателен.
func (bh *BotHandler) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := bh.Deps.BotClient.Request(callback); err != nil {
		log.Printf("answerCallback: ошибка ответа на коллбэк: %v", err)
	}
}
