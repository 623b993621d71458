package engine

import "errors"

// Типизированные отказы ядра. Презентационный слой превращает их в
// человеческие сообщения, ядро никогда не гасит их молча.
var (
	// ErrNotFound — заказ, пользователь, анкета или строка реестра отсутствует.
	ErrNotFound = errors.New("объект не найден")

	// ErrUnauthorized — действующий пользователь не владелец/не назначенный
	// исполнитель, заблокирован или не имеет нужной роли.
	ErrUnauthorized = errors.New("недостаточно прав")

	// ErrInvalidTransition — нарушено предусловие машины состояний: не тот
	// статус, не та подтверждающая сторона, нет взаимного liked, проигрыш
	// в гонке compare-and-swap.
	ErrInvalidTransition = errors.New("недопустимый переход состояния")

	// ErrDuplicate — нарушение уникального ключа на путях, которые по
	// контракту идемпотентны; указывает на проблему в слое хранения.
	ErrDuplicate = errors.New("нарушение уникальности")
)
