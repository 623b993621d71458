package engine

import "Proektbot/internal/models"

// Store — контракт ядра с хранилищем. Реализуется пакетом db (PostgreSQL)
// и фейковым хранилищем в тестах. Каждый вызов — самостоятельная атомарная
// операция; ядро не держит авторитетного кэша состояния между вызовами.
//
// Отсутствующая запись возвращается как (nil, nil): ошибка зарезервирована
// за сбоями хранилища.
type Store interface {
	GetUserByID(id int64) (*models.User, error)

	GetOrder(orderID int64) (*models.Order, error)
	CreateOrder(customerID int64, draft models.OrderDraft) (*models.Order, error)
	UpdateOrderContent(orderID int64, draft models.OrderDraft) error
	// SetOrderStatusIf атомарно переводит заказ из expectStatus в newStatus.
	// Возвращает false, если текущий статус уже другой (проигрыш в гонке).
	SetOrderStatusIf(orderID int64, expectStatus, newStatus string) (bool, error)
	// SetOrderStatusIfUnassigned — то же, но только для заказа без
	// назначенного исполнителя.
	SetOrderStatusIfUnassigned(orderID int64, expectStatus, newStatus string) (bool, error)
	// AssignExecutorIf закрепляет исполнителя за заказом при условии, что
	// статус равен expectStatus и исполнитель еще не назначен.
	AssignExecutorIf(orderID, executorID int64, expectStatus string) (bool, error)
	// ListOpenOrders возвращает незакрытые заказы, отсортированные стабильно
	// (created_at, id).
	ListOpenOrders() ([]models.Order, error)

	GetExecutorProfile(userID int64) (*models.ExecutorProfile, error)
	// ListExecutorProfiles возвращает анкеты исполнителей со сведениями
	// пользователя, отсортированные стабильно (user_id).
	ListExecutorProfiles() ([]models.ExecutorProfile, error)

	// UpsertDecision создает строку реестра при отсутствии и записывает
	// решение только указанной стороны, не затирая решение второй стороны.
	// Идемпотентна; пересмотр решения разрешен.
	UpsertDecision(orderID, executorID int64, side, decision string) error
	GetMatch(orderID, executorID int64) (*models.Match, error)
	ListMatchesForOrder(orderID int64) ([]models.Match, error)
	ListMatchesForExecutor(executorID int64) ([]models.Match, error)

	// UpsertRating — last-write-wins по ключу (order, from, to).
	UpsertRating(orderID, fromUserID, toUserID int64, stars int, review string) error
	// RatingSummary возвращает (средняя, количество); (0, 0) без оценок.
	RatingSummary(userID int64) (float64, int, error)
}
