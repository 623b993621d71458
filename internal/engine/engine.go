// Пакет engine — ядро сервиса: жизненный цикл заказа, реестр двусторонних
// решений, подбор кандидатов и агрегация оценок. Все операции принимают
// идентификатор действующего пользователя и, где роли пересекаются, явную
// активную роль; ядро никогда не выводит роль из сохраненного состояния.
package engine

import (
	"log"

	"Proektbot/internal/models"
	"Proektbot/internal/notify"
)

// Engine связывает хранилище и нотификатор. Уведомления отправляются только
// после успешной смены состояния; их сбой не считается сбоем операции.
type Engine struct {
	store    Store
	notifier notify.Notifier
}

// New создает движок. При nil-нотификаторе уведомления молча пропускаются.
func New(store Store, notifier notify.Notifier) *Engine {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Engine{store: store, notifier: notifier}
}

// requireUser загружает пользователя и отклоняет заблокированных.
func (e *Engine) requireUser(userID int64) (*models.User, error) {
	user, err := e.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Blocked {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// requireOrder загружает заказ.
func (e *Engine) requireOrder(orderID int64) (*models.Order, error) {
	order, err := e.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// notifyUser доставляет уведомление лично пользователю, если у него привязан
// Telegram. Fire-and-forget: ошибки доставки остаются в нотификаторе.
func (e *Engine) notifyUser(userID int64, kind notify.Kind, ev notify.Event) {
	user, err := e.store.GetUserByID(userID)
	if err != nil {
		log.Printf("notifyUser: ошибка загрузки получателя %d: %v", userID, err)
		return
	}
	if user == nil || !user.TgID.Valid {
		return
	}
	e.notifier.Notify(user.TgID.Int64, kind, ev)
}
