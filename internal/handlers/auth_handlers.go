package handlers

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// handleContact обрабатывает присланный контакт: находит учетную запись по
// телефону или создает новую, затем предлагает выбрать роль.
func (bh *BotHandler) handleContact(chatID int64, message *tgbotapi.Message) {
	contact := message.Contact
	if contact.UserID != 0 && contact.UserID != message.From.ID {
		bh.sendMessage(chatID, "Пожалуйста, поделитесь своим собственным номером телефона.")
		return
	}

	phone, err := utils.ValidatePhoneNumber(contact.PhoneNumber)
	if err != nil {
		bh.sendMessage(chatID, "❌ "+err.Error())
		return
	}

	user, err := bh.Deps.Store.GetUserByPhone(phone)
	if err != nil {
		bh.sendMessage(chatID, "Произошла ошибка, попробуйте еще раз позже.")
		return
	}

	isAdmin, err := bh.Deps.Store.IsAdminPhone(phone)
	if err != nil {
		log.Printf("handleContact: ошибка проверки белого списка для %s: %v", phone, err)
	}

	if user == nil {
		user, err = bh.Deps.Store.CreateUser(chatID, phone, false)
		if err != nil {
			log.Printf("handleContact: ошибка создания пользователя chatID %d: %v", chatID, err)
			bh.sendMessage(chatID, "Не удалось создать учетную запись, попробуйте еще раз.")
			return
		}
	} else if !user.TgID.Valid || user.TgID.Int64 != chatID {
		// Телефон уже известен, привязываем текущий Telegram аккаунт.
		if err := bh.Deps.Store.UpdateUserTgID(user.ID, chatID); err != nil {
			bh.sendMessage(chatID, "Произошла ошибка, попробуйте еще раз позже.")
			return
		}
	}

	// Убираем reply-клавиатуру с кнопкой контакта.
	bye := tgbotapi.NewMessage(chatID, "✅ Номер подтвержден.")
	bye.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := bh.Deps.BotClient.Send(bye); err != nil {
		log.Printf("handleContact: ошибка отправки подтверждения chatID %d: %v", chatID, err)
	}

	// Телефон из белого списка получает права администратора после ввода
	// кодового слова. Без настроенного кода права выдаются сразу.
	if isAdmin && !user.IsAdmin {
		if bh.Deps.Config.AdminCode == "" {
			if err := bh.Deps.Store.SetUserRole(user.ID, constants.ROLE_ADMIN, true); err != nil {
				log.Printf("handleContact: ошибка выдачи прав администратора пользователю ID %d: %v", user.ID, err)
			}
		} else {
			bh.Deps.SessionManager.SetState(chatID, constants.STATE_AUTH_ADMIN_CODE)
			bh.sendMessage(chatID, "🔐 Ваш номер в списке администраторов. Введите кодовое слово или отправьте \"-\", чтобы продолжить без прав администратора.")
			return
		}
	}

	bh.showRoleChoice(chatID)
}

// handleAdminCode проверяет кодовое слово администратора.
func (bh *BotHandler) handleAdminCode(chatID int64, user *models.User, text string) {
	if text != "-" {
		if text != bh.Deps.Config.AdminCode {
			bh.sendMessage(chatID, "❌ Неверное кодовое слово. Попробуйте еще раз или отправьте \"-\".")
			return
		}
		if err := bh.Deps.Store.SetUserRole(user.ID, constants.ROLE_ADMIN, true); err != nil {
			log.Printf("handleAdminCode: ошибка выдачи прав администратора пользователю ID %d: %v", user.ID, err)
			bh.sendMessage(chatID, "Произошла ошибка, попробуйте еще раз позже.")
			return
		}
		bh.sendMessage(chatID, "✅ Права администратора подтверждены.")
	}
	bh.showRoleChoice(chatID)
}

// showRoleChoice показывает выбор роли для текущего сеанса.
func (bh *BotHandler) showRoleChoice(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_AUTH_ROLE)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧑‍💼 Я заказчик", constants.CB_ROLE_CUSTOMER),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👷 Я исполнитель", constants.CB_ROLE_EXECUTOR),
		),
	)
	bh.sendMenu(chatID, "Кем вы хотите работать в сервисе?", &keyboard)
}

// handleRoleChoice продолжает сценарий после выбора роли: либо запускает
// регистрацию, либо открывает главное меню роли.
func (bh *BotHandler) handleRoleChoice(chatID int64, user *models.User, role string) {
	if err := bh.Deps.Store.SetLastRole(user.ID, role); err != nil {
		log.Printf("handleRoleChoice: ошибка сохранения роли пользователя ID %d: %v", user.ID, err)
	}

	switch role {
	case constants.ROLE_CUSTOMER:
		if user.IsCustomer && user.FirstName.Valid {
			bh.showCustomerMenu(chatID, user)
			return
		}
		bh.startCustomerRegistration(chatID)
	case constants.ROLE_EXECUTOR:
		profile, err := bh.Deps.Store.GetExecutorProfile(user.ID)
		if err != nil {
			bh.sendMessage(chatID, "Произошла ошибка, попробуйте еще раз позже.")
			return
		}
		if user.IsExecutor && profile != nil {
			bh.showExecutorMenu(chatID, user)
			return
		}
		bh.startExecutorRegistration(chatID)
	}
}
