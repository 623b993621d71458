package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// handleExecutorCallback разбирает callback-и кабинета исполнителя.
func (bh *BotHandler) handleExecutorCallback(chatID int64, user *models.User, data string) {
	switch {
	case data == constants.CB_EXEC_BACK_MAIN:
		bh.showExecutorMenu(chatID, user)
	case data == constants.CB_EXEC_BACK_MAIN+":orders":
		bh.showExecutorOrders(chatID, user)

	case data == constants.CB_EXEC_MATCH_LIST:
		bh.showNextOrderCandidate(chatID, user)

	case strings.HasPrefix(data, constants.CB_EXEC_MATCH_YES):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_MATCH_YES))
		bh.executorDecide(chatID, user, orderID, constants.DECISION_LIKED, true)

	case strings.HasPrefix(data, constants.CB_EXEC_MATCH_NO):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_MATCH_NO))
		bh.executorDecide(chatID, user, orderID, constants.DECISION_DECLINED, true)

	case data == constants.CB_EXEC_CHOSEN_LIST:
		bh.showChosenList(chatID, user)

	case strings.HasPrefix(data, constants.CB_EXEC_CHOSEN_ORDER):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_CHOSEN_ORDER))
		bh.showChosenOrderCard(chatID, user, orderID)

	case strings.HasPrefix(data, constants.CB_EXEC_CHOSEN_YES):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_CHOSEN_YES))
		bh.executorDecide(chatID, user, orderID, constants.DECISION_LIKED, false)

	case strings.HasPrefix(data, constants.CB_EXEC_CHOSEN_NO):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_CHOSEN_NO))
		bh.executorDecide(chatID, user, orderID, constants.DECISION_DECLINED, false)

	case strings.HasPrefix(data, constants.CB_EXEC_ORDER_CLOSE):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_ORDER_CLOSE))
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Да, работа завершена", constants.CB_EXEC_CLOSE_YES+itoa64(orderID)),
				tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", constants.CB_EXEC_ORDER+itoa64(orderID)),
			),
		)
		bh.sendMenu(chatID, "Запросить закрытие заказа №"+itoa64(orderID)+"?", &keyboard)

	case strings.HasPrefix(data, constants.CB_EXEC_CLOSE_YES):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_CLOSE_YES))
		if err := bh.Deps.Engine.RequestClose(user.ID, orderID, constants.ROLE_EXECUTOR); err != nil {
			bh.sendMessage(chatID, "Не удалось запросить закрытие: "+userFacingError(err))
			return
		}
		bh.sendMessage(chatID, "📨 Запрос на закрытие отправлен заказчику, ждем подтверждения.")
		bh.showExecutorOrders(chatID, user)

	case strings.HasPrefix(data, constants.CB_EXEC_CLOSE_CONFIRM):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_CLOSE_CONFIRM))
		if err := bh.Deps.Engine.ConfirmClose(user.ID, orderID, constants.ROLE_EXECUTOR); err != nil {
			bh.sendMessage(chatID, "Не удалось подтвердить закрытие: "+userFacingError(err))
			return
		}
		bh.sendMessage(chatID, "✅ Заказ закрыт. Спасибо за работу!")

	case strings.HasPrefix(data, constants.CB_EXEC_ORDER):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_EXEC_ORDER))
		bh.showAssignedOrderCard(chatID, user, orderID)
	}
}

// showNextOrderCandidate показывает исполнителю следующий подходящий заказ.
func (bh *BotHandler) showNextOrderCandidate(chatID int64, user *models.User) {
	order, err := bh.Deps.Engine.NextOrderCandidate(user.ID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось подобрать заказ: "+userFacingError(err))
		return
	}
	if order == nil {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_EXEC_BACK_MAIN),
			),
		)
		bh.sendMenu(chatID, "Подходящих заказов больше нет. Загляните позже.", &keyboard)
		return
	}

	text := utils.FormatOrderCard(order, nil, false)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Откликнуться", constants.CB_EXEC_MATCH_YES+itoa64(order.ID)),
			tgbotapi.NewInlineKeyboardButtonData("👎 Пропустить", constants.CB_EXEC_MATCH_NO+itoa64(order.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_EXEC_BACK_MAIN),
		),
	)
	bh.sendMenu(chatID, text, &keyboard)
}

// executorDecide записывает решение исполнителя. continueBrowsing управляет
// тем, показывать ли следующий заказ из ленты.
func (bh *BotHandler) executorDecide(chatID int64, user *models.User, orderID int64, decision string, continueBrowsing bool) {
	err := bh.Deps.Engine.Decide(user.ID, orderID, user.ID, constants.ROLE_EXECUTOR, decision)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить решение: "+userFacingError(err))
		return
	}

	if decision == constants.DECISION_LIKED {
		match, _ := bh.Deps.Engine.DecisionPair(orderID, user.ID)
		if match != nil && match.IsMutualLike() {
			bh.sendMessage(chatID, "🎉 Взаимный выбор! Заказчик уведомлен и может назначить вас на заказ.")
		} else {
			bh.sendMessage(chatID, "✅ Отклик отправлен. Заказчик получил уведомление.")
		}
	}

	if continueBrowsing {
		bh.showNextOrderCandidate(chatID, user)
	} else {
		bh.showChosenList(chatID, user)
	}
}

// showChosenList показывает заказы, по которым заказчик выбрал исполнителя.
func (bh *BotHandler) showChosenList(chatID int64, user *models.User) {
	matches, err := bh.Deps.Store.ListMatchesForExecutor(user.ID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить список, попробуйте позже.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := range matches {
		m := &matches[i]
		customerLiked := m.CustomerDecision.Valid && m.CustomerDecision.String == constants.DECISION_LIKED
		executorUndecided := !m.ExecutorDecision.Valid
		if !customerLiked || !executorUndecided {
			continue
		}
		order, _ := bh.Deps.Store.GetOrder(m.OrderID)
		if order == nil || order.Status == constants.STATUS_CLOSED || order.AssignedExecutorID.Valid {
			continue
		}
		label := fmt.Sprintf("№%d %s", order.ID, order.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, constants.CB_EXEC_CHOSEN_ORDER+itoa64(order.ID)),
		))
	}

	text := "🎉 Заказчики выбрали вас по этим заказам. Откликнитесь, чтобы образовать взаимную пару."
	if len(rows) == 0 {
		text = "Пока никто не выбрал вас по новым заказам."
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 В меню", constants.CB_EXEC_BACK_MAIN),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}

// showChosenOrderCard показывает заказ, по которому исполнителя выбрали.
func (bh *BotHandler) showChosenOrderCard(chatID int64, user *models.User, orderID int64) {
	order, err := bh.Deps.Store.GetOrder(orderID)
	if err != nil || order == nil {
		bh.sendMessage(chatID, "Заказ не найден.")
		return
	}

	text := utils.FormatOrderCard(order, nil, false)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Откликнуться", constants.CB_EXEC_CHOSEN_YES+itoa64(order.ID)),
			tgbotapi.NewInlineKeyboardButtonData("👎 Отказаться", constants.CB_EXEC_CHOSEN_NO+itoa64(order.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К списку", constants.CB_EXEC_CHOSEN_LIST),
		),
	)
	bh.sendMenu(chatID, text, &keyboard)
}

// showAssignedOrderCard показывает закрепленный заказ с контактами заказчика.
func (bh *BotHandler) showAssignedOrderCard(chatID int64, user *models.User, orderID int64) {
	order, err := bh.Deps.Store.GetOrder(orderID)
	if err != nil || order == nil {
		bh.sendMessage(chatID, "Заказ не найден.")
		return
	}
	if !order.IsAssignedTo(user.ID) {
		bh.sendMessage(chatID, "Этот заказ за вами не закреплен.")
		return
	}

	customer, _ := bh.Deps.Store.GetUserByID(order.CustomerID)
	text := utils.FormatOrderCard(order, customer, true) + "\nСтатус: " + utils.FormatOrderStatus(order.Status)

	var rows [][]tgbotapi.InlineKeyboardButton
	if order.Status == constants.STATUS_OPEN {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Завершить работу", constants.CB_EXEC_ORDER_CLOSE+itoa64(order.ID)),
		))
	}
	if order.Status == constants.STATUS_CLOSING_BY_CUSTOMER {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить закрытие", constants.CB_EXEC_CLOSE_CONFIRM+itoa64(order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К заказам", constants.CB_EXEC_BACK_MAIN+":orders"),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}
