package handlers

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// showMainMenu открывает меню последней активной роли пользователя.
func (bh *BotHandler) showMainMenu(chatID int64, user *models.User) {
	switch {
	case user.LastRole.Valid && user.LastRole.String == constants.ROLE_EXECUTOR && user.IsExecutor:
		bh.showExecutorMenu(chatID, user)
	case user.IsCustomer:
		bh.showCustomerMenu(chatID, user)
	case user.IsExecutor:
		bh.showExecutorMenu(chatID, user)
	default:
		bh.showRoleChoice(chatID)
	}
}

// showCustomerMenu — главное меню заказчика.
func (bh *BotHandler) showCustomerMenu(chatID int64, user *models.User) {
	bh.Deps.SessionManager.ResetState(chatID)
	if err := bh.Deps.Store.SetLastRole(user.ID, constants.ROLE_CUSTOMER); err == nil {
		user.LastRole.String = constants.ROLE_CUSTOMER
		user.LastRole.Valid = true
	}

	avg, count, _ := bh.Deps.Engine.RatingSummary(user.ID)
	text := fmt.Sprintf("🧑‍💼 Кабинет заказчика\n\n%s\n%s",
		user.FullName(), utils.FormatRating(avg, count))

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый заказ", constants.CB_CUST_ORDER_NEW),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Мои заказы", constants.CB_CUST_BACK_MAIN+":orders"),
		),
	}
	if user.IsExecutor {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Перейти в кабинет исполнителя", constants.CB_ROLE_EXECUTOR),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👷 Стать исполнителем", constants.CB_BECOME_EXECUTOR),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🆘 Помощь", constants.CB_HELP_NEW),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}

// showCustomerOrders выводит список заказов заказчика.
func (bh *BotHandler) showCustomerOrders(chatID int64, user *models.User) {
	orders, err := bh.Deps.Store.ListOrdersByCustomer(user.ID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить заказы, попробуйте позже.")
		return
	}
	if len(orders) == 0 {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("➕ Новый заказ", constants.CB_CUST_ORDER_NEW),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_CUST_BACK_MAIN),
			),
		)
		bh.sendMenu(chatID, "У вас пока нет заказов.", &keyboard)
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(orders)+1)
	for _, order := range orders {
		label := fmt.Sprintf("№%d %s %s", order.ID, order.Name, utils.FormatOrderStatus(order.Status))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, constants.CB_CUST_ORDER+itoa64(order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_CUST_BACK_MAIN),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, "📦 Ваши заказы:", &keyboard)
}

// showExecutorMenu — главное меню исполнителя.
func (bh *BotHandler) showExecutorMenu(chatID int64, user *models.User) {
	bh.Deps.SessionManager.ResetState(chatID)
	if err := bh.Deps.Store.SetLastRole(user.ID, constants.ROLE_EXECUTOR); err == nil {
		user.LastRole.String = constants.ROLE_EXECUTOR
		user.LastRole.Valid = true
	}

	avg, count, _ := bh.Deps.Engine.RatingSummary(user.ID)
	text := fmt.Sprintf("👷 Кабинет исполнителя\n\n%s\n%s",
		user.FullName(), utils.FormatRating(avg, count))

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Смотреть заказы", constants.CB_EXEC_MATCH_LIST),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎉 Вас выбрали", constants.CB_EXEC_CHOSEN_LIST),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📁 Мои заказы", constants.CB_EXEC_BACK_MAIN+":orders"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить анкету", constants.CB_EXEC_EDIT_PROFILE),
		),
	}
	if user.IsCustomer {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Перейти в кабинет заказчика", constants.CB_ROLE_CUSTOMER),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧑‍💼 Стать заказчиком", constants.CB_BECOME_CUSTOMER),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🆘 Помощь", constants.CB_HELP_NEW),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}

// showExecutorOrders выводит заказы, закрепленные за исполнителем.
func (bh *BotHandler) showExecutorOrders(chatID int64, user *models.User) {
	orders, err := bh.Deps.Store.ListOrdersAssignedTo(user.ID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить заказы, попробуйте позже.")
		return
	}
	if len(orders) == 0 {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_EXEC_BACK_MAIN),
			),
		)
		bh.sendMenu(chatID, "За вами пока не закреплено ни одного заказа.", &keyboard)
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(orders)+1)
	for _, order := range orders {
		label := fmt.Sprintf("№%d %s %s", order.ID, order.Name, utils.FormatOrderStatus(order.Status))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, constants.CB_EXEC_ORDER+itoa64(order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_EXEC_BACK_MAIN),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, "📁 Ваши заказы:", &keyboard)
}

// --- Помощь ---

// startHelpRequest запрашивает у пользователя текст обращения в поддержку.
func (bh *BotHandler) startHelpRequest(chatID int64, user *models.User) {
	if user == nil {
		bh.sendMessage(chatID, "Пожалуйста, начните с команды /start.")
		return
	}
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_HELP_TEXT)
	bh.sendMenu(chatID, "🆘 Опишите вашу проблему или вопрос одним сообщением.", nil)
}

// handleHelpText сохраняет обращение и возвращает пользователя в меню.
func (bh *BotHandler) handleHelpText(chatID int64, user *models.User, text string) {
	if strings.TrimSpace(text) == "" {
		bh.sendMessage(chatID, "Текст обращения не может быть пустым.")
		return
	}
	role := constants.ROLE_CUSTOMER
	if user.LastRole.Valid {
		role = user.LastRole.String
	}
	help, err := bh.Deps.Store.AddHelpMessage(user.ID, role, text)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось отправить обращение, попробуйте позже.")
		return
	}
	bh.broadcastHelpToAdmins(user, help)
	bh.Deps.SessionManager.ResetState(chatID)
	bh.sendMessage(chatID, "✅ Обращение принято. Мы свяжемся с вами.")
	bh.showMainMenu(chatID, user)
}

// broadcastHelpToAdmins рассылает обращение всем администраторам.
func (bh *BotHandler) broadcastHelpToAdmins(from *models.User, help *models.HelpMessage) {
	admins, err := bh.Deps.Store.ListAdmins()
	if err != nil {
		log.Printf("broadcastHelpToAdmins: ошибка получения администраторов: %v", err)
		return
	}
	text := fmt.Sprintf("🆘 Обращение #%d\nОт: %s (%s), роль: %s\n\n%s",
		help.ID, from.FullName(), utils.FormatPhoneNumber(from.Phone), help.Role, help.Text)
	for _, admin := range admins {
		if admin.ID == from.ID {
			continue
		}
		msg := tgbotapi.NewMessage(admin.TgID.Int64, text)
		if _, err := bh.Deps.BotClient.Send(msg); err != nil {
			log.Printf("broadcastHelpToAdmins: ошибка отправки администратору ID %d: %v", admin.ID, err)
		}
	}
}
