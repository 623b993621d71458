package telegram_api

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendOrEditMessage пытается отредактировать существующее сообщение,
// а при невозможности отправляет новое. Ошибка "message is not modified"
// считается успехом: возвращается объект с исходным MessageID и nil.
func SendOrEditMessage(
	botClient *BotClient,
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}

	if messageIDToTryEdit != 0 {
		var originalMsg tgbotapi.Message
		originalMsg.Chat.ID = chatID
		originalMsg.MessageID = messageIDToTryEdit
		originalMsg.Text = text

		var editConfig tgbotapi.EditMessageTextConfig
		if keyboard != nil {
			editConfig = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageIDToTryEdit, text, *keyboard)
		} else {
			editConfig = tgbotapi.NewEditMessageText(chatID, messageIDToTryEdit, text)
		}

		_, err := botClient.Request(editConfig)
		if err == nil {
			return originalMsg, nil
		}
		if strings.Contains(err.Error(), "message is not modified") {
			return originalMsg, nil
		}
		if !strings.Contains(err.Error(), "message to edit not found") {
			log.Printf("SendOrEditMessage: ошибка редактирования сообщения chatID=%d, MessageID=%d: %v. Будет отправлено новое.", chatID, messageIDToTryEdit, err)
		}
		// Падаем на отправку нового сообщения.
	}

	newMsg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		newMsg.ReplyMarkup = keyboard
	}
	sentMsg, err := botClient.Send(newMsg)
	if err != nil {
		log.Printf("SendOrEditMessage: ошибка отправки нового сообщения для chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return sentMsg, nil
}

// SendErrorMessage отправляет пользователю стандартное сообщение об ошибке
// с кнопкой возврата в главное меню.
func SendErrorMessage(botClient *BotClient, chatID int64, messageIDToTryEdit int, errorText string) (tgbotapi.Message, error) {
	log.Printf("Отправка сообщения об ошибке для chatID %d: %s", chatID, errorText)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", "back_to_main"),
		),
	)
	return SendOrEditMessage(botClient, chatID, messageIDToTryEdit, errorText, &keyboard)
}

// DeleteMessage удаляет сообщение. Возвращает true при успехе.
func DeleteMessage(botClient *BotClient, chatID int64, messageID int) bool {
	if botClient == nil || botClient.api == nil || messageID == 0 {
		return false
	}
	response, err := botClient.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		log.Printf("DeleteMessage: ChatID=%d, MessageID=%d: %v", chatID, messageID, err)
		return false
	}
	if !response.Ok {
		if !strings.Contains(response.Description, "message to delete not found") &&
			!strings.Contains(response.Description, "message can't be deleted") {
			log.Printf("DeleteMessage: не удалось удалить сообщение %d для chatID %d: %s", messageID, chatID, response.Description)
		}
		return false
	}
	return true
}
