package handlers

import (
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// HandleCallbackQuery обрабатывает нажатия inline-кнопок.
func (bh *BotHandler) HandleCallbackQuery(update tgbotapi.Update) {
	if update.CallbackQuery == nil {
		return
	}
	query := update.CallbackQuery
	chatID := query.Message.Chat.ID
	data := query.Data

	log.Printf("HandleCallbackQuery: ChatID=%d, Data='%s'", chatID, data)
	bh.answerCallback(query.ID, "")

	if data == constants.CB_NOOP {
		return
	}

	user := bh.getUserByChat(chatID)
	if user == nil {
		bh.sendMessage(chatID, "Пожалуйста, начните с команды /start.")
		return
	}
	if user.Blocked {
		bh.sendMessage(chatID, "Ваш аккаунт заблокирован. Обратитесь к администратору.")
		return
	}

	// Сообщение с кнопкой становится последним сообщением бота, которое
	// можно редактировать.
	bh.Deps.SessionManager.SetLastMessageID(chatID, query.Message.MessageID)

	switch {
	// Выбор и смена роли
	case data == constants.CB_ROLE_CUSTOMER:
		bh.handleRoleChoice(chatID, user, constants.ROLE_CUSTOMER)
	case data == constants.CB_ROLE_EXECUTOR:
		bh.handleRoleChoice(chatID, user, constants.ROLE_EXECUTOR)
	case data == constants.CB_BECOME_EXECUTOR, data == constants.CB_EXEC_EDIT_PROFILE:
		bh.startExecutorRegistration(chatID)
	case data == constants.CB_BECOME_CUSTOMER:
		if user.IsCustomer {
			bh.showCustomerMenu(chatID, user)
		} else {
			bh.startCustomerRegistration(chatID)
		}

	// Шаги диалогов
	case strings.HasPrefix(data, constants.CB_PICK):
		index, _ := strconv.Atoi(strings.TrimPrefix(data, constants.CB_PICK))
		bh.handlePickToggle(chatID, index)
	case data == constants.CB_PICK_DONE:
		bh.handlePickDone(chatID, user)
	case strings.HasPrefix(data, constants.CB_EXP):
		index, _ := strconv.Atoi(strings.TrimPrefix(data, constants.CB_EXP))
		bh.handleExperienceChoice(chatID, index)
	case data == constants.CB_SKIP:
		bh.handleSkip(chatID, user)
	case data == constants.CB_YES, data == constants.CB_NO:
		bh.handleYesNo(chatID, user, data == constants.CB_YES)
	case data == constants.CB_ORDER_SAVE:
		bh.saveOrder(chatID, user)
	case data == constants.CB_ORDER_CANCEL:
		bh.Deps.SessionManager.ClearOrderSession(chatID)
		bh.Deps.SessionManager.ResetState(chatID)
		bh.showMainMenu(chatID, user)

	// Кабинет заказчика
	case strings.HasPrefix(data, "cust_"):
		bh.handleCustomerCallback(chatID, user, data)

	// Кабинет исполнителя
	case strings.HasPrefix(data, "exec_"):
		bh.handleExecutorCallback(chatID, user, data)

	// Оценки и помощь
	case strings.HasPrefix(data, constants.CB_RATE):
		bh.handleRateCallback(chatID, user, strings.TrimPrefix(data, constants.CB_RATE))
	case data == constants.CB_HELP_NEW:
		bh.startHelpRequest(chatID, user)

	default:
		log.Printf("HandleCallbackQuery: неизвестный callback '%s' от chatID %d", data, chatID)
	}
}

// handlePickDone завершает текущий шаг мультивыбора и ведет диалог дальше.
func (bh *BotHandler) handlePickDone(chatID int64, user *models.User) {
	state := bh.Deps.SessionManager.GetState(chatID)
	target := bh.selectionTarget(chatID, state)
	if target == nil {
		return
	}

	switch state {
	case constants.STATE_EXEC_REG_DOC_TYPES:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один вид документации.")
			return
		}
		bh.promptMultiSelect(chatID, constants.STATE_EXEC_REG_CONSTR)

	case constants.STATE_EXEC_REG_CONSTR:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один тип строительства.")
			return
		}
		bh.advanceSections(chatID, user, *target, true, "")

	case constants.STATE_EXEC_REG_SECT_CAP:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один раздел.")
			return
		}
		draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
		bh.advanceSections(chatID, user, draft.ConstrTyps, true, constants.CONSTRUCTION_CAPITAL)

	case constants.STATE_EXEC_REG_SECT_LIN:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один раздел.")
			return
		}
		bh.finishExecutorRegistration(chatID, user)

	case constants.STATE_ORDER_DOC_TYPES:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один вид документации.")
			return
		}
		bh.promptMultiSelect(chatID, constants.STATE_ORDER_CONSTR)

	case constants.STATE_ORDER_CONSTR:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один тип строительства.")
			return
		}
		bh.advanceSections(chatID, user, *target, false, "")

	case constants.STATE_ORDER_SECT_CAP:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один раздел.")
			return
		}
		sess := bh.Deps.SessionManager.GetOrderSession(chatID)
		bh.advanceSections(chatID, user, sess.Draft.ConstructionTypes, false, constants.CONSTRUCTION_CAPITAL)

	case constants.STATE_ORDER_SECT_LIN:
		if len(*target) == 0 {
			bh.sendMessage(chatID, "Выберите хотя бы один раздел.")
			return
		}
		bh.promptOrderDescription(chatID)
	}
}

// advanceSections ведет диалог по шагам разделов в зависимости от выбранных
// типов строительства. doneType — тип, разделы которого уже заполнены.
func (bh *BotHandler) advanceSections(chatID int64, user *models.User, constructionTypes models.StringList, registration bool, doneType string) {
	wantCapital := constructionTypes.Contains(constants.CONSTRUCTION_CAPITAL) && doneType != constants.CONSTRUCTION_CAPITAL
	wantLinear := constructionTypes.Contains(constants.CONSTRUCTION_LINEAR)

	if wantCapital {
		if registration {
			bh.promptMultiSelect(chatID, constants.STATE_EXEC_REG_SECT_CAP)
		} else {
			bh.promptMultiSelect(chatID, constants.STATE_ORDER_SECT_CAP)
		}
		return
	}
	if wantLinear {
		if registration {
			bh.promptMultiSelect(chatID, constants.STATE_EXEC_REG_SECT_LIN)
		} else {
			bh.promptMultiSelect(chatID, constants.STATE_ORDER_SECT_LIN)
		}
		return
	}
	// Все нужные шаги разделов пройдены.
	if registration {
		bh.finishExecutorRegistration(chatID, user)
	} else {
		bh.promptOrderDescription(chatID)
	}
}

// handleSkip пропускает необязательный шаг текущего диалога.
func (bh *BotHandler) handleSkip(chatID int64, user *models.User) {
	state := bh.Deps.SessionManager.GetState(chatID)
	switch state {
	case constants.STATE_CUST_REG_ORG:
		bh.finishCustomerRegistration(chatID, user)
	case constants.STATE_EXEC_REG_ORG:
		bh.promptExperience(chatID)
	case constants.STATE_EXEC_REG_RESUME:
		bh.promptMultiSelect(chatID, constants.STATE_EXEC_REG_DOC_TYPES)
	case constants.STATE_ORDER_DESCRIPTION:
		bh.promptOrderDeadline(chatID)
	case constants.STATE_ORDER_DEADLINE:
		bh.promptOrderPrice(chatID)
	case constants.STATE_ORDER_PRICE:
		bh.promptOrderExpertise(chatID)
	case constants.STATE_ORDER_FILES:
		bh.showOrderConfirm(chatID, user)
	case constants.STATE_RATING_REVIEW:
		bh.Deps.SessionManager.ClearRatingDraft(chatID)
		bh.Deps.SessionManager.ResetState(chatID)
		bh.showMainMenu(chatID, user)
	}
}

// handleYesNo обрабатывает бинарные шаги диалогов.
func (bh *BotHandler) handleYesNo(chatID int64, user *models.User, answer bool) {
	state := bh.Deps.SessionManager.GetState(chatID)
	if state == constants.STATE_ORDER_EXPERTISE {
		sess := bh.Deps.SessionManager.GetOrderSession(chatID)
		sess.Draft.ExpertiseRequired = answer
		bh.promptOrderFiles(chatID)
	}
}
