package handlers

import (
	"strconv"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

func itoa(v int) string { return strconv.Itoa(v) }

func itoa64(v int64) string { return strconv.FormatInt(v, 10) }

// skipKeyboard — одна кнопка "Пропустить" для необязательных шагов.
func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", constants.CB_SKIP),
		),
	)
}

// yesNoKeyboard — кнопки "Да"/"Нет" для бинарных шагов.
func yesNoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да", constants.CB_YES),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", constants.CB_NO),
		),
	)
}

// multiSelectOptions возвращает список вариантов для шага мультивыбора.
func multiSelectOptions(state string) []string {
	switch state {
	case constants.STATE_EXEC_REG_DOC_TYPES, constants.STATE_ORDER_DOC_TYPES:
		return constants.DocTypes
	case constants.STATE_EXEC_REG_CONSTR, constants.STATE_ORDER_CONSTR:
		return constants.ConstructionTypes
	case constants.STATE_EXEC_REG_SECT_CAP, constants.STATE_ORDER_SECT_CAP:
		return constants.SectionsCapital
	case constants.STATE_EXEC_REG_SECT_LIN, constants.STATE_ORDER_SECT_LIN:
		return constants.SectionsLinear
	}
	return nil
}

// multiSelectPrompt возвращает текст подсказки для шага мультивыбора.
func multiSelectPrompt(state string) string {
	switch state {
	case constants.STATE_EXEC_REG_DOC_TYPES:
		return "Какие виды документации вы разрабатываете? Отметьте и нажмите «Готово»."
	case constants.STATE_ORDER_DOC_TYPES:
		return "Какая документация требуется? Отметьте и нажмите «Готово»."
	case constants.STATE_EXEC_REG_CONSTR, constants.STATE_ORDER_CONSTR:
		return "Выберите тип строительства. Отметьте и нажмите «Готово»."
	case constants.STATE_EXEC_REG_SECT_CAP, constants.STATE_ORDER_SECT_CAP:
		return "Выберите разделы по капитальному строительству."
	case constants.STATE_EXEC_REG_SECT_LIN, constants.STATE_ORDER_SECT_LIN:
		return "Выберите разделы по линейным объектам."
	}
	return "Сделайте выбор."
}

// selectionTarget возвращает список, который редактируется на данном шаге.
// Шаги регистрации пишут в RegistrationDraft, шаги заказа — в OrderSession.
func (bh *BotHandler) selectionTarget(chatID int64, state string) *models.StringList {
	switch state {
	case constants.STATE_EXEC_REG_DOC_TYPES:
		return &bh.Deps.SessionManager.GetRegistrationDraft(chatID).DocTypes
	case constants.STATE_EXEC_REG_CONSTR:
		return &bh.Deps.SessionManager.GetRegistrationDraft(chatID).ConstrTyps
	case constants.STATE_EXEC_REG_SECT_CAP:
		return &bh.Deps.SessionManager.GetRegistrationDraft(chatID).SectCap
	case constants.STATE_EXEC_REG_SECT_LIN:
		return &bh.Deps.SessionManager.GetRegistrationDraft(chatID).SectLin
	case constants.STATE_ORDER_DOC_TYPES:
		return &bh.Deps.SessionManager.GetOrderSession(chatID).Draft.DocTypes
	case constants.STATE_ORDER_CONSTR:
		return &bh.Deps.SessionManager.GetOrderSession(chatID).Draft.ConstructionTypes
	case constants.STATE_ORDER_SECT_CAP:
		return &bh.Deps.SessionManager.GetOrderSession(chatID).Draft.SectionsCapital
	case constants.STATE_ORDER_SECT_LIN:
		return &bh.Deps.SessionManager.GetOrderSession(chatID).Draft.SectionsLinear
	}
	return nil
}

// buildMultiSelectKeyboard собирает клавиатуру мультивыбора с отметками.
func buildMultiSelectKeyboard(options []string, selected models.StringList) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)+1)
	for i, option := range options {
		label := option
		if selected.Contains(option) {
			label = "✅ " + option
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, constants.CB_PICK+itoa(i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Готово ➡️", constants.CB_PICK_DONE),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// promptMultiSelect переводит диалог на шаг мультивыбора и рисует клавиатуру.
func (bh *BotHandler) promptMultiSelect(chatID int64, state string) {
	bh.Deps.SessionManager.SetState(chatID, state)
	options := multiSelectOptions(state)
	selected := bh.selectionTarget(chatID, state)
	var current models.StringList
	if selected != nil {
		current = *selected
	}
	keyboard := buildMultiSelectKeyboard(options, current)
	bh.sendMenu(chatID, multiSelectPrompt(state), &keyboard)
}

// handlePickToggle переключает пункт мультивыбора и перерисовывает клавиатуру.
func (bh *BotHandler) handlePickToggle(chatID int64, index int) {
	state := bh.Deps.SessionManager.GetState(chatID)
	options := multiSelectOptions(state)
	target := bh.selectionTarget(chatID, state)
	if target == nil || index < 0 || index >= len(options) {
		return
	}
	option := options[index]
	if target.Contains(option) {
		next := make(models.StringList, 0, len(*target))
		for _, v := range *target {
			if v != option {
				next = append(next, v)
			}
		}
		*target = next
	} else {
		*target = append(*target, option)
	}
	keyboard := buildMultiSelectKeyboard(options, *target)
	bh.sendMenu(chatID, multiSelectPrompt(state), &keyboard)
}
