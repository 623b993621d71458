package handlers

import (
	"log"
	"strconv"
	"strings"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
	"Proektbot/internal/session"
)

// handleRateCallback обрабатывает выбор количества звезд.
// Payload имеет вид "<orderID>:<toUserID>:<stars>".
func (bh *BotHandler) handleRateCallback(chatID int64, user *models.User, payload string) {
	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return
	}
	orderID := parseID(parts[0])
	toUserID := parseID(parts[1])
	stars, _ := strconv.Atoi(parts[2])

	if err := bh.Deps.Engine.AddRating(user.ID, orderID, toUserID, stars, ""); err != nil {
		log.Printf("handleRateCallback: ошибка сохранения оценки: %v", err)
		bh.sendMessage(chatID, "Не удалось сохранить оценку: "+userFacingError(err))
		return
	}

	bh.Deps.SessionManager.SetRatingDraft(chatID, &session.RatingDraft{
		OrderID:  orderID,
		ToUserID: toUserID,
		Stars:    stars,
	})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_RATING_REVIEW)
	keyboard := skipKeyboard()
	bh.sendMenu(chatID, "✅ Оценка сохранена. Хотите оставить текстовый отзыв? Напишите его или пропустите.", &keyboard)
}

// handleRatingReviewText дополняет сохраненную оценку текстовым отзывом.
func (bh *BotHandler) handleRatingReviewText(chatID int64, user *models.User, text string) {
	draft := bh.Deps.SessionManager.GetRatingDraft(chatID)
	if draft == nil {
		bh.Deps.SessionManager.ResetState(chatID)
		bh.showMainMenu(chatID, user)
		return
	}
	review := strings.TrimSpace(text)
	if review == "-" {
		bh.Deps.SessionManager.ClearRatingDraft(chatID)
		bh.Deps.SessionManager.ResetState(chatID)
		bh.showMainMenu(chatID, user)
		return
	}
	if err := bh.Deps.Engine.AddRating(user.ID, draft.OrderID, draft.ToUserID, draft.Stars, review); err != nil {
		bh.sendMessage(chatID, "Не удалось сохранить отзыв: "+userFacingError(err))
		return
	}
	bh.Deps.SessionManager.ClearRatingDraft(chatID)
	bh.Deps.SessionManager.ResetState(chatID)
	bh.sendMessage(chatID, "🙏 Спасибо за отзыв!")
	bh.showMainMenu(chatID, user)
}
