package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// handleCustomerCallback разбирает callback-и кабинета заказчика.
func (bh *BotHandler) handleCustomerCallback(chatID int64, user *models.User, data string) {
	switch {
	case data == constants.CB_CUST_BACK_MAIN:
		bh.showCustomerMenu(chatID, user)
	case data == constants.CB_CUST_BACK_MAIN+":orders":
		bh.showCustomerOrders(chatID, user)
	case data == constants.CB_CUST_ORDER_NEW:
		bh.startOrderCreation(chatID)

	case strings.HasPrefix(data, constants.CB_CUST_ORDER_EDIT):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_ORDER_EDIT))
		order := bh.customerOrder(chatID, user, orderID)
		if order == nil {
			return
		}
		bh.startOrderEditing(chatID, order)

	case strings.HasPrefix(data, constants.CB_CUST_ORDER_CLOSE):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_ORDER_CLOSE))
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Да, закрыть", constants.CB_CUST_CLOSE_YES+itoa64(orderID)),
				tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", constants.CB_CUST_ORDER+itoa64(orderID)),
			),
		)
		bh.sendMenu(chatID, "Закрыть заказ №"+itoa64(orderID)+"?", &keyboard)

	case strings.HasPrefix(data, constants.CB_CUST_CLOSE_YES):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_CLOSE_YES))
		if err := bh.Deps.Engine.RequestClose(user.ID, orderID, constants.ROLE_CUSTOMER); err != nil {
			bh.sendMessage(chatID, "Не удалось закрыть заказ: "+userFacingError(err))
			return
		}
		order, _ := bh.Deps.Store.GetOrder(orderID)
		if order != nil && order.Status == constants.STATUS_CLOSED {
			bh.sendMessage(chatID, "✅ Заказ закрыт.")
		} else {
			bh.sendMessage(chatID, "📨 Запрос на закрытие отправлен исполнителю, ждем подтверждения.")
		}
		bh.showCustomerOrders(chatID, user)

	case strings.HasPrefix(data, constants.CB_CUST_CLOSE_CONFIRM):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_CLOSE_CONFIRM))
		if err := bh.Deps.Engine.ConfirmClose(user.ID, orderID, constants.ROLE_CUSTOMER); err != nil {
			bh.sendMessage(chatID, "Не удалось подтвердить закрытие: "+userFacingError(err))
			return
		}
		bh.sendMessage(chatID, "✅ Заказ закрыт. Спасибо за работу!")

	case strings.HasPrefix(data, constants.CB_CUST_RESPONSES_NEW):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_RESPONSES_NEW))
		bh.showNextCandidate(chatID, user, orderID)

	case strings.HasPrefix(data, constants.CB_CUST_RESP_LIKED):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_RESP_LIKED))
		bh.showLikedExecutors(chatID, user, orderID)

	case strings.HasPrefix(data, constants.CB_CUST_RESP_DECLINED):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_RESP_DECLINED))
		bh.showDeclinedExecutors(chatID, user, orderID)

	case strings.HasPrefix(data, constants.CB_CUST_RESPONSES):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_RESPONSES))
		bh.showOrderResponses(chatID, user, orderID)

	case strings.HasPrefix(data, constants.CB_CUST_CANDIDATE_YES):
		orderID, executorID := parsePair(strings.TrimPrefix(data, constants.CB_CUST_CANDIDATE_YES))
		bh.customerDecide(chatID, user, orderID, executorID, constants.DECISION_LIKED)

	case strings.HasPrefix(data, constants.CB_CUST_CANDIDATE_NO):
		orderID, executorID := parsePair(strings.TrimPrefix(data, constants.CB_CUST_CANDIDATE_NO))
		bh.customerDecide(chatID, user, orderID, executorID, constants.DECISION_DECLINED)

	case strings.HasPrefix(data, constants.CB_CUST_CHANGE_DECIDE):
		orderID, executorID := parsePair(strings.TrimPrefix(data, constants.CB_CUST_CHANGE_DECIDE))
		bh.showCandidateCard(chatID, orderID, executorID)

	case strings.HasPrefix(data, constants.CB_CUST_CONFIRM_EXEC):
		orderID, executorID := parsePair(strings.TrimPrefix(data, constants.CB_CUST_CONFIRM_EXEC))
		bh.assignExecutor(chatID, user, orderID, executorID)

	case strings.HasPrefix(data, constants.CB_CUST_ORDER):
		orderID := parseID(strings.TrimPrefix(data, constants.CB_CUST_ORDER))
		bh.showCustomerOrderCard(chatID, user, orderID)
	}
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

// parsePair разбирает payload вида "<orderID>:<executorID>".
func parsePair(s string) (int64, int64) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	return parseID(parts[0]), parseID(parts[1])
}

// customerOrder загружает заказ и проверяет, что он принадлежит пользователю.
func (bh *BotHandler) customerOrder(chatID int64, user *models.User, orderID int64) *models.Order {
	order, err := bh.Deps.Store.GetOrder(orderID)
	if err != nil || order == nil {
		bh.sendMessage(chatID, "Заказ не найден.")
		return nil
	}
	if order.CustomerID != user.ID {
		bh.sendMessage(chatID, "Это не ваш заказ.")
		return nil
	}
	return order
}

// showCustomerOrderCard показывает карточку заказа с действиями заказчика.
func (bh *BotHandler) showCustomerOrderCard(chatID int64, user *models.User, orderID int64) {
	order := bh.customerOrder(chatID, user, orderID)
	if order == nil {
		return
	}

	text := utils.FormatOrderCard(order, nil, false) + "\nСтатус: " + utils.FormatOrderStatus(order.Status)
	if order.AssignedExecutorID.Valid {
		if executor, _ := bh.Deps.Store.GetUserByID(order.AssignedExecutorID.Int64); executor != nil {
			text += fmt.Sprintf("\n👷 Исполнитель: %s, %s", executor.FullName(), utils.FormatPhoneNumber(executor.Phone))
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if order.Status == constants.STATUS_OPEN && !order.AssignedExecutorID.Valid {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Подобрать исполнителей", constants.CB_CUST_RESPONSES_NEW+itoa64(order.ID)),
		))
	}
	if order.Status != constants.STATUS_CLOSED {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📨 Отклики", constants.CB_CUST_RESPONSES+itoa64(order.ID)),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать", constants.CB_CUST_ORDER_EDIT+itoa64(order.ID)),
				tgbotapi.NewInlineKeyboardButtonData("📦 Закрыть", constants.CB_CUST_ORDER_CLOSE+itoa64(order.ID)),
			),
		)
	}
	if order.Status == constants.STATUS_CLOSING_BY_EXECUTOR {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить закрытие", constants.CB_CUST_CLOSE_CONFIRM+itoa64(order.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К заказам", constants.CB_CUST_BACK_MAIN+":orders"),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}

// showNextCandidate показывает следующего подходящего исполнителя по заказу.
func (bh *BotHandler) showNextCandidate(chatID int64, user *models.User, orderID int64) {
	profile, err := bh.Deps.Engine.NextExecutorCandidate(user.ID, orderID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось подобрать исполнителя: "+userFacingError(err))
		return
	}
	if profile == nil {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 К заказу", constants.CB_CUST_ORDER+itoa64(orderID)),
			),
		)
		bh.sendMenu(chatID, "Подходящих исполнителей больше нет. Загляните позже или посмотрите отклики.", &keyboard)
		return
	}
	bh.showCandidateCard(chatID, orderID, profile.UserID)
}

// showCandidateCard показывает карточку исполнителя с кнопками решения.
func (bh *BotHandler) showCandidateCard(chatID int64, orderID, executorID int64) {
	profile, err := bh.Deps.Store.GetExecutorProfile(executorID)
	if err != nil || profile == nil {
		bh.sendMessage(chatID, "Анкета исполнителя не найдена.")
		return
	}
	avg, count, _ := bh.Deps.Engine.RatingSummary(executorID)
	text := utils.FormatExecutorCard(profile, avg, count, false)

	pair := itoa64(orderID) + ":" + itoa64(executorID)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Подходит", constants.CB_CUST_CANDIDATE_YES+pair),
			tgbotapi.NewInlineKeyboardButtonData("👎 Не подходит", constants.CB_CUST_CANDIDATE_NO+pair),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К заказу", constants.CB_CUST_ORDER+itoa64(orderID)),
		),
	)
	bh.sendMenu(chatID, text, &keyboard)
}

// customerDecide записывает решение заказчика и ведет подбор дальше.
func (bh *BotHandler) customerDecide(chatID int64, user *models.User, orderID, executorID int64, decision string) {
	err := bh.Deps.Engine.Decide(user.ID, orderID, executorID, constants.ROLE_CUSTOMER, decision)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить решение: "+userFacingError(err))
		return
	}

	if decision == constants.DECISION_LIKED {
		match, _ := bh.Deps.Engine.DecisionPair(orderID, executorID)
		if match != nil && match.IsMutualLike() {
			pair := itoa64(orderID) + ":" + itoa64(executorID)
			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("🤝 Назначить исполнителем", constants.CB_CUST_CONFIRM_EXEC+pair),
				),
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("➡️ Смотреть дальше", constants.CB_CUST_RESPONSES_NEW+itoa64(orderID)),
				),
			)
			bh.sendMenu(chatID, "🎉 Взаимный выбор! Исполнитель тоже откликнулся на этот заказ. Назначить его?", &keyboard)
			return
		}
	}
	bh.showNextCandidate(chatID, user, orderID)
}

// assignExecutor закрепляет исполнителя за заказом.
func (bh *BotHandler) assignExecutor(chatID int64, user *models.User, orderID, executorID int64) {
	if err := bh.Deps.Engine.Assign(user.ID, orderID, executorID); err != nil {
		bh.sendMessage(chatID, "Не удалось назначить исполнителя: "+userFacingError(err))
		return
	}
	executor, _ := bh.Deps.Store.GetUserByID(executorID)
	text := "🤝 Исполнитель назначен."
	if executor != nil {
		text = fmt.Sprintf("🤝 Исполнитель назначен: %s, %s", executor.FullName(), utils.FormatPhoneNumber(executor.Phone))
	}
	bh.sendMessage(chatID, text)
	bh.showCustomerOrderCard(chatID, user, orderID)
}

// showOrderResponses показывает меню откликов по заказу.
func (bh *BotHandler) showOrderResponses(chatID int64, user *models.User, orderID int64) {
	order := bh.customerOrder(chatID, user, orderID)
	if order == nil {
		return
	}
	matches, err := bh.Deps.Store.ListMatchesForOrder(orderID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить отклики, попробуйте позже.")
		return
	}

	var newResponses, liked, declined int
	for i := range matches {
		m := &matches[i]
		execLiked := m.ExecutorDecision.Valid && m.ExecutorDecision.String == constants.DECISION_LIKED
		switch {
		case execLiked && !m.CustomerDecision.Valid:
			newResponses++
		case m.CustomerDecision.Valid && m.CustomerDecision.String == constants.DECISION_LIKED:
			liked++
		case m.CustomerDecision.Valid && m.CustomerDecision.String == constants.DECISION_DECLINED:
			declined++
		}
	}

	text := fmt.Sprintf("📨 Отклики по заказу №%d:\n\nНовых откликов: %d\nВыбрано вами: %d\nОтклонено: %d",
		orderID, newResponses, liked, declined)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔎 Смотреть новые отклики", constants.CB_CUST_RESPONSES_NEW+itoa64(orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Выбранные", constants.CB_CUST_RESP_LIKED+itoa64(orderID)),
			tgbotapi.NewInlineKeyboardButtonData("👎 Отклоненные", constants.CB_CUST_RESP_DECLINED+itoa64(orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К заказу", constants.CB_CUST_ORDER+itoa64(orderID)),
		),
	)
	bh.sendMenu(chatID, text, &keyboard)
}

// showLikedExecutors показывает исполнителей, выбранных заказчиком, с кнопкой
// назначения для взаимных пар.
func (bh *BotHandler) showLikedExecutors(chatID int64, user *models.User, orderID int64) {
	if bh.customerOrder(chatID, user, orderID) == nil {
		return
	}
	matches, err := bh.Deps.Engine.CustomerLikes(orderID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить список, попробуйте позже.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := range matches {
		m := &matches[i]
		executor, _ := bh.Deps.Store.GetUserByID(m.ExecutorID)
		if executor == nil {
			continue
		}
		label := executor.FullName()
		pair := itoa64(orderID) + ":" + itoa64(m.ExecutorID)
		if m.IsMutualLike() {
			label = "🤝 " + label + " (взаимно)"
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, constants.CB_CUST_CONFIRM_EXEC+pair),
			))
		} else {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👍 "+label, constants.CB_CUST_CHANGE_DECIDE+pair),
			))
		}
	}
	text := "👍 Выбранные исполнители. Взаимные пары можно назначить на заказ."
	if len(rows) == 0 {
		text = "Вы пока никого не выбрали по этому заказу."
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К откликам", constants.CB_CUST_RESPONSES+itoa64(orderID)),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}

// showDeclinedExecutors показывает отклоненных исполнителей, решение можно
// пересмотреть.
func (bh *BotHandler) showDeclinedExecutors(chatID int64, user *models.User, orderID int64) {
	if bh.customerOrder(chatID, user, orderID) == nil {
		return
	}
	matches, err := bh.Deps.Engine.CustomerDeclines(orderID)
	if err != nil {
		bh.sendMessage(chatID, "Не удалось получить список, попробуйте позже.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := range matches {
		m := &matches[i]
		executor, _ := bh.Deps.Store.GetUserByID(m.ExecutorID)
		if executor == nil {
			continue
		}
		pair := itoa64(orderID) + ":" + itoa64(m.ExecutorID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👎 "+executor.FullName(), constants.CB_CUST_CHANGE_DECIDE+pair),
		))
	}
	text := "👎 Отклоненные исполнители. Нажмите, чтобы пересмотреть решение."
	if len(rows) == 0 {
		text = "Отклоненных исполнителей нет."
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К откликам", constants.CB_CUST_RESPONSES+itoa64(orderID)),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, text, &keyboard)
}
