// Пакет notify — асинхронная доставка уведомлений пользователям.
// Контракт fire-and-forget: доставка хотя бы один раз не гарантируется,
// вызывающая сторона не получает результата и не должна падать из-за
// недоступности транспорта.
package notify

// Kind — вид уведомления.
type Kind string

const (
	// KindExecutorChosen — заказчик выбрал исполнителя (customer liked).
	KindExecutorChosen Kind = "executor_chosen"
	// KindExecutorResponded — исполнитель откликнулся на заказ (executor liked).
	KindExecutorResponded Kind = "executor_responded"
	// KindExecutorAssigned — заказчик закрепил исполнителя за заказом.
	KindExecutorAssigned Kind = "executor_assigned"
	// KindCloseRequested — контрагент запросил закрытие, нужно подтверждение.
	KindCloseRequested Kind = "close_requested"
	// KindRatePrompt — заказ закрыт, предложить оценить контрагента.
	KindRatePrompt Kind = "rate_prompt"
)

// Event — контекст уведомления.
type Event struct {
	OrderID   int64
	OrderName string
	// CounterpartID — пользователь по другую сторону сделки: кого оценивать
	// в KindRatePrompt, кто действовал в остальных видах.
	CounterpartID int64
	// InitiatorRole — роль инициатора для KindCloseRequested: от нее зависит,
	// какая кнопка подтверждения показывается получателю.
	InitiatorRole string
}

// Notifier доставляет уведомление пользователю по его chat_id.
type Notifier interface {
	Notify(chatID int64, kind Kind, ev Event)
}

// Nop — заглушка для тестов и запуска без Telegram.
type Nop struct{}

func (Nop) Notify(int64, Kind, Event) {}
