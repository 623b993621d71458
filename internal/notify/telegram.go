package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/constants"
	"Proektbot/internal/telegram_api"
)

// Telegram доставляет уведомления через Telegram Bot API.
// Отправка идет в отдельной горутине, ошибки только логируются.
type Telegram struct {
	client *telegram_api.BotClient
}

// NewTelegram возвращает Notifier поверх инициализированного BotClient.
func NewTelegram(client *telegram_api.BotClient) *Telegram {
	return &Telegram{client: client}
}

func (t *Telegram) Notify(chatID int64, kind Kind, ev Event) {
	if t == nil || t.client == nil {
		return
	}
	go func() {
		text, keyboard := composeNotification(kind, ev)
		if text == "" {
			log.Printf("Notify: неизвестный вид уведомления %q, пропускаем.", kind)
			return
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if keyboard != nil {
			msg.ReplyMarkup = *keyboard
		}
		if _, err := t.client.Send(msg); err != nil {
			log.Printf("Notify: ошибка отправки уведомления %s для chatID %d: %v", kind, chatID, err)
		}
	}()
}

func composeNotification(kind Kind, ev Event) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch kind {
	case KindExecutorChosen:
		text := fmt.Sprintf("🎉 Заказчик выбрал вас по заказу №%d «%s»! Посмотрите заказ в разделе «Вас выбрали».", ev.OrderID, ev.OrderName)
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👀 Посмотреть", constants.CB_EXEC_CHOSEN_ORDER+fmt.Sprint(ev.OrderID)),
			),
		)
		return text, &keyboard

	case KindExecutorResponded:
		text := fmt.Sprintf("📨 На ваш заказ №%d «%s» откликнулся исполнитель. Посмотрите отклики.", ev.OrderID, ev.OrderName)
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👀 Посмотреть отклики", constants.CB_CUST_RESPONSES+fmt.Sprint(ev.OrderID)),
			),
		)
		return text, &keyboard

	case KindExecutorAssigned:
		return fmt.Sprintf("✅ Вы назначены исполнителем заказа №%d «%s». Контакты заказчика доступны в карточке заказа.", ev.OrderID, ev.OrderName), nil

	case KindCloseRequested:
		var confirmData string
		if ev.InitiatorRole == constants.ROLE_CUSTOMER {
			confirmData = constants.CB_EXEC_CLOSE_CONFIRM + fmt.Sprint(ev.OrderID)
		} else {
			confirmData = constants.CB_CUST_CLOSE_CONFIRM + fmt.Sprint(ev.OrderID)
		}
		text := fmt.Sprintf("📦 По заказу №%d «%s» запрошено закрытие. Подтвердите, что работа завершена.", ev.OrderID, ev.OrderName)
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить закрытие", confirmData),
			),
		)
		return text, &keyboard

	case KindRatePrompt:
		text := fmt.Sprintf("⭐ Заказ №%d «%s» закрыт. Оцените работу по заказу от 1 до 5.", ev.OrderID, ev.OrderName)
		row := make([]tgbotapi.InlineKeyboardButton, 0, 5)
		for stars := 1; stars <= 5; stars++ {
			data := fmt.Sprintf("%s%d:%d:%d", constants.CB_RATE, ev.OrderID, ev.CounterpartID, stars)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d⭐", stars), data))
		}
		keyboard := tgbotapi.NewInlineKeyboardMarkup(row)
		return text, &keyboard
	}
	return "", nil
}
