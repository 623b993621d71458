package handlers

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/engine"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// startOrderCreation начинает диалог нового заказа.
func (bh *BotHandler) startOrderCreation(chatID int64) {
	bh.Deps.SessionManager.ClearOrderSession(chatID)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_NAME)
	bh.sendMenu(chatID, "➕ Новый заказ.\n\nВведите название объекта или проекта.", nil)
}

// startOrderEditing начинает диалог редактирования существующего заказа,
// предзаполняя черновик его содержимым.
func (bh *BotHandler) startOrderEditing(chatID int64, order *models.Order) {
	bh.Deps.SessionManager.ClearOrderSession(chatID)
	sess := bh.Deps.SessionManager.GetOrderSession(chatID)
	sess.EditingOrderID = order.ID
	sess.Draft = models.OrderDraft{
		Name:              order.Name,
		DocTypes:          order.DocTypes,
		ConstructionTypes: order.ConstructionTypes,
		SectionsCapital:   order.SectionsCapital,
		SectionsLinear:    order.SectionsLinear,
		Description:       order.Description.String,
		Deadline:          order.Deadline.String,
		Price:             order.Price.String,
		ExpertiseRequired: order.ExpertiseRequired.Valid && order.ExpertiseRequired.Bool,
		FilesLink:         order.FilesLink.String,
	}
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_NAME)
	bh.sendMenu(chatID, "✏️ Редактирование заказа.\n\nВведите новое название (текущее: "+order.Name+").", nil)
}

// handleOrderText обрабатывает текстовые шаги диалога заказа.
func (bh *BotHandler) handleOrderText(chatID int64, user *models.User, state, text string) {
	sess := bh.Deps.SessionManager.GetOrderSession(chatID)
	switch state {
	case constants.STATE_ORDER_NAME:
		if strings.TrimSpace(text) == "" {
			bh.sendMessage(chatID, "Название не может быть пустым.")
			return
		}
		sess.Draft.Name = strings.TrimSpace(text)
		bh.promptMultiSelect(chatID, constants.STATE_ORDER_DOC_TYPES)

	case constants.STATE_ORDER_DESCRIPTION:
		sess.Draft.Description = strings.TrimSpace(text)
		bh.promptOrderDeadline(chatID)

	case constants.STATE_ORDER_DEADLINE:
		deadline, err := utils.ValidateDeadline(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		sess.Draft.Deadline = deadline
		bh.promptOrderPrice(chatID)

	case constants.STATE_ORDER_PRICE:
		price, err := utils.ValidatePrice(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		sess.Draft.Price = price
		bh.promptOrderExpertise(chatID)

	case constants.STATE_ORDER_FILES:
		link, err := utils.ValidateURL(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		sess.Draft.FilesLink = link
		bh.showOrderConfirm(chatID, user)
	}
}

func (bh *BotHandler) promptOrderDescription(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_DESCRIPTION)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "Опишите заказ подробнее (или пропустите).", &keyboard)
}

func (bh *BotHandler) promptOrderDeadline(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_DEADLINE)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "Укажите срок выполнения в формате ДД.ММ.ГГГГ (или пропустите).", &keyboard)
}

func (bh *BotHandler) promptOrderPrice(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_PRICE)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "Укажите цену в рублях или 'договорная' (или пропустите).", &keyboard)
}

func (bh *BotHandler) promptOrderExpertise(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_EXPERTISE)
	keyboard := yesNoKeyboard()
	bh.sendMenu(chatID, "Требуется ли прохождение экспертизы?", &keyboard)
}

func (bh *BotHandler) promptOrderFiles(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_FILES)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "Пришлите ссылку на исходные материалы (или пропустите).", &keyboard)
}

// showOrderConfirm показывает собранный заказ и кнопки сохранения.
func (bh *BotHandler) showOrderConfirm(chatID int64, user *models.User) {
	sess := bh.Deps.SessionManager.GetOrderSession(chatID)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ORDER_CONFIRM)

	preview := &models.Order{
		Name:              sess.Draft.Name,
		DocTypes:          sess.Draft.DocTypes,
		ConstructionTypes: sess.Draft.ConstructionTypes,
		SectionsCapital:   sess.Draft.SectionsCapital,
		SectionsLinear:    sess.Draft.SectionsLinear,
		Description:       sql.NullString{String: sess.Draft.Description, Valid: sess.Draft.Description != ""},
		Deadline:          sql.NullString{String: sess.Draft.Deadline, Valid: sess.Draft.Deadline != ""},
		Price:             sql.NullString{String: sess.Draft.Price, Valid: sess.Draft.Price != ""},
		ExpertiseRequired: sql.NullBool{Bool: sess.Draft.ExpertiseRequired, Valid: true},
		FilesLink:         sql.NullString{String: sess.Draft.FilesLink, Valid: sess.Draft.FilesLink != ""},
	}
	text := "Проверьте заказ:\n\n" + utils.FormatOrderCard(preview, nil, false)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Сохранить", constants.CB_ORDER_SAVE),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", constants.CB_ORDER_CANCEL),
		),
	)
	bh.sendMenu(chatID, text, &keyboard)
}

// saveOrder сохраняет черновик: создает новый заказ или обновляет существующий.
func (bh *BotHandler) saveOrder(chatID int64, user *models.User) {
	sess := bh.Deps.SessionManager.GetOrderSession(chatID)

	if sess.EditingOrderID != 0 {
		err := bh.Deps.Engine.EditOrder(user.ID, sess.EditingOrderID, sess.Draft)
		if err != nil {
			log.Printf("saveOrder: ошибка обновления заказа ID %d: %v", sess.EditingOrderID, err)
			bh.sendMessage(chatID, "Не удалось обновить заказ: "+userFacingError(err))
			return
		}
		bh.sendMessage(chatID, "✅ Заказ обновлен.")
	} else {
		order, err := bh.Deps.Engine.CreateOrder(user.ID, sess.Draft)
		if err != nil {
			log.Printf("saveOrder: ошибка создания заказа: %v", err)
			bh.sendMessage(chatID, "Не удалось создать заказ: "+userFacingError(err))
			return
		}
		bh.sendMessage(chatID, "✅ Заказ №"+itoa64(order.ID)+" создан. Подберите исполнителей в карточке заказа.")
	}
	bh.Deps.SessionManager.ClearOrderSession(chatID)
	bh.Deps.SessionManager.ResetState(chatID)
	bh.showCustomerOrders(chatID, user)
}

// userFacingError переводит типизированные ошибки ядра в текст для пользователя.
func userFacingError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrNotFound):
		return "объект не найден"
	case errors.Is(err, engine.ErrUnauthorized):
		return "действие недоступно"
	case errors.Is(err, engine.ErrInvalidTransition):
		return "заказ уже в другом состоянии"
	}
	return err.Error()
}
