package handlers

import (
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// HandleMessage обрабатывает входящие сообщения от Telegram.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	log.Printf("HandleMessage: ChatID=%d, Text='%s', Contact=%v", chatID, text, message.Contact != nil)

	user := bh.getUserByChat(chatID)
	if user != nil && user.Blocked {
		bh.sendMessage(chatID, "Ваш аккаунт заблокирован. Обратитесь к администратору.")
		return
	}

	if message.Contact != nil {
		bh.handleContact(chatID, message)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			bh.handleStart(chatID, user)
		case "help":
			bh.startHelpRequest(chatID, user)
		case "stats", "block", "unblock", "admin_add", "admin_remove",
			"report_reviews", "report_users", "report_stats":
			bh.handleAdminCommand(chatID, user, message.Command(), message.CommandArguments())
		default:
			bh.sendMessage(chatID, "Неизвестная команда. Используйте /start.")
		}
		return
	}

	if user == nil {
		bh.sendMessage(chatID, "Пожалуйста, начните с команды /start и поделитесь номером телефона.")
		return
	}

	state := bh.Deps.SessionManager.GetState(chatID)
	switch {
	case state == constants.STATE_AUTH_ADMIN_CODE:
		bh.handleAdminCode(chatID, user, text)
	case strings.HasPrefix(state, "cust_reg_"):
		bh.handleCustomerRegistrationText(chatID, user, state, text)
	case strings.HasPrefix(state, "exec_reg_"):
		bh.handleExecutorRegistrationText(chatID, user, state, text)
	case strings.HasPrefix(state, "order_"):
		bh.handleOrderText(chatID, user, state, text)
	case state == constants.STATE_RATING_REVIEW:
		bh.handleRatingReviewText(chatID, user, text)
	case state == constants.STATE_HELP_TEXT:
		bh.handleHelpText(chatID, user, text)
	default:
		// Вне диалога текст не ожидается, показываем главное меню.
		bh.showMainMenu(chatID, user)
	}
}

// handleStart сбрасывает сессию и либо запрашивает контакт у нового
// пользователя, либо показывает главное меню.
func (bh *BotHandler) handleStart(chatID int64, user *models.User) {
	bh.Deps.SessionManager.ResetState(chatID)
	bh.Deps.SessionManager.ClearRegistrationDraft(chatID)
	bh.Deps.SessionManager.ClearOrderSession(chatID)
	bh.Deps.SessionManager.ClearRatingDraft(chatID)

	if user == nil {
		bh.requestContact(chatID)
		return
	}
	bh.showMainMenu(chatID, user)
}

// requestContact просит пользователя поделиться номером телефона.
func (bh *BotHandler) requestContact(chatID int64) {
	msg := tgbotapi.NewMessage(chatID,
		"👋 Добро пожаловать! Это сервис подбора исполнителей проектной документации.\n\n"+
			"Для входа поделитесь номером телефона кнопкой ниже.")
	contactButton := tgbotapi.NewKeyboardButtonContact("📱 Поделиться номером")
	keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(contactButton))
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	msg.ReplyMarkup = keyboard
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("requestContact: ошибка отправки запроса контакта chatID %d: %v", chatID, err)
	}
}
