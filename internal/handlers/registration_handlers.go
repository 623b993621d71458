package handlers

import (
	"database/sql"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// --- Регистрация заказчика ---

func (bh *BotHandler) startCustomerRegistration(chatID int64) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	draft.Role = constants.ROLE_CUSTOMER
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_CUST_REG_FIRST_NAME)
	bh.sendMenu(chatID, "📝 Регистрация заказчика.\n\nКак вас зовут? Введите имя.", nil)
}

func (bh *BotHandler) handleCustomerRegistrationText(chatID int64, user *models.User, state, text string) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	switch state {
	case constants.STATE_CUST_REG_FIRST_NAME:
		name, err := utils.ValidateName(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		draft.FirstName = name
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_CUST_REG_LAST_NAME)
		bh.sendMenu(chatID, "Введите фамилию.", nil)

	case constants.STATE_CUST_REG_LAST_NAME:
		name, err := utils.ValidateName(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		draft.LastName = name
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_CUST_REG_ORG)
		keyboard := skipKeyboard()
		bh.sendMenu(chatID, "Укажите название организации (или пропустите).", &keyboard)

	case constants.STATE_CUST_REG_ORG:
		draft.OrgName = strings.TrimSpace(text)
		bh.finishCustomerRegistration(chatID, user)
	}
}

func (bh *BotHandler) finishCustomerRegistration(chatID int64, user *models.User) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	if err := bh.Deps.Store.UpdateUserName(user.ID, draft.FirstName, draft.LastName, draft.OrgName); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить данные, попробуйте еще раз.")
		return
	}
	if err := bh.Deps.Store.SetUserRole(user.ID, constants.ROLE_CUSTOMER, true); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить данные, попробуйте еще раз.")
		return
	}
	bh.Deps.SessionManager.ClearRegistrationDraft(chatID)
	bh.Deps.SessionManager.ResetState(chatID)
	log.Printf("finishCustomerRegistration: пользователь ID %d зарегистрирован как заказчик.", user.ID)

	updated := bh.getUserByChat(chatID)
	if updated == nil {
		updated = user
	}
	bh.showCustomerMenu(chatID, updated)
}

// --- Регистрация исполнителя ---

func (bh *BotHandler) startExecutorRegistration(chatID int64) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	draft.Role = constants.ROLE_EXECUTOR
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_EXEC_REG_FIRST_NAME)
	bh.sendMenu(chatID, "📝 Регистрация исполнителя.\n\nКак вас зовут? Введите имя.", nil)
}

func (bh *BotHandler) handleExecutorRegistrationText(chatID int64, user *models.User, state, text string) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	switch state {
	case constants.STATE_EXEC_REG_FIRST_NAME:
		name, err := utils.ValidateName(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		draft.FirstName = name
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_EXEC_REG_LAST_NAME)
		bh.sendMenu(chatID, "Введите фамилию.", nil)

	case constants.STATE_EXEC_REG_LAST_NAME:
		name, err := utils.ValidateName(text)
		if err != nil {
			bh.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		draft.LastName = name
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_EXEC_REG_ORG)
		keyboard := skipKeyboard()
		bh.sendMenu(chatID, "Укажите название организации (или пропустите).", &keyboard)

	case constants.STATE_EXEC_REG_ORG:
		draft.OrgName = strings.TrimSpace(text)
		bh.promptExperience(chatID)

	case constants.STATE_EXEC_REG_RESUME:
		// Ссылка сохраняется как резюме, любой другой текст — как описание о себе.
		if link, err := utils.ValidateURL(text); err == nil {
			draft.ResumeLink = link
		} else {
			draft.ResumeText = strings.TrimSpace(text)
		}
		bh.promptMultiSelect(chatID, constants.STATE_EXEC_REG_DOC_TYPES)
	}
}

// promptExperience предлагает выбрать уровень опыта кнопками.
func (bh *BotHandler) promptExperience(chatID int64) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_EXEC_REG_EXPERIENCE)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(constants.ExperienceTiers))
	for i, tier := range constants.ExperienceTiers {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tier, constants.CB_EXP+itoa(i)),
		))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	bh.sendMenu(chatID, "Какой у вас опыт проектирования?", &keyboard)
}

// handleExperienceChoice фиксирует выбранный уровень опыта.
func (bh *BotHandler) handleExperienceChoice(chatID int64, index int) {
	if index < 0 || index >= len(constants.ExperienceTiers) {
		return
	}
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)
	draft.Experience = constants.ExperienceTiers[index]
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_EXEC_REG_RESUME)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "Пришлите ссылку на резюме или коротко расскажите о себе (можно пропустить).", &keyboard)
}

// finishExecutorRegistration сохраняет анкету и включает роль исполнителя.
func (bh *BotHandler) finishExecutorRegistration(chatID int64, user *models.User) {
	draft := bh.Deps.SessionManager.GetRegistrationDraft(chatID)

	if err := bh.Deps.Store.UpdateUserName(user.ID, draft.FirstName, draft.LastName, draft.OrgName); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить данные, попробуйте еще раз.")
		return
	}
	profile := &models.ExecutorProfile{
		UserID:            user.ID,
		Experience:        draft.Experience,
		ResumeLink:        sql.NullString{String: draft.ResumeLink, Valid: draft.ResumeLink != ""},
		ResumeText:        sql.NullString{String: draft.ResumeText, Valid: draft.ResumeText != ""},
		DocTypes:          draft.DocTypes,
		ConstructionTypes: draft.ConstrTyps,
		SectionsCapital:   draft.SectCap,
		SectionsLinear:    draft.SectLin,
	}
	if err := bh.Deps.Store.UpsertExecutorProfile(profile); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить анкету, попробуйте еще раз.")
		return
	}
	if err := bh.Deps.Store.SetUserRole(user.ID, constants.ROLE_EXECUTOR, true); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить данные, попробуйте еще раз.")
		return
	}
	bh.Deps.SessionManager.ClearRegistrationDraft(chatID)
	bh.Deps.SessionManager.ResetState(chatID)
	log.Printf("finishExecutorRegistration: пользователь ID %d зарегистрирован как исполнитель.", user.ID)

	updated := bh.getUserByChat(chatID)
	if updated == nil {
		updated = user
	}
	bh.showExecutorMenu(chatID, updated)
}
