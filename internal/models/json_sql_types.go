package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList — набор тегов, хранящийся в текстовой колонке как JSON-массив.
// Порядок элементов не несет смысла, значим только состав набора.
type StringList []string

// Value реализует driver.Valuer: сериализует список в JSON для записи в БД.
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(sl))
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации списка тегов: %w", err)
	}
	return string(data), nil
}

// Scan реализует sql.Scanner: восстанавливает список из JSON-колонки.
// NULL и пустая строка читаются как пустой список.
func (sl *StringList) Scan(src interface{}) error {
	if src == nil {
		*sl = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: неожиданный тип %T", src)
	}
	if len(data) == 0 {
		*sl = StringList{}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("StringList.Scan: ошибка разбора JSON: %w", err)
	}
	*sl = StringList(items)
	return nil
}

// Contains сообщает, входит ли значение в набор.
func (sl StringList) Contains(value string) bool {
	for _, item := range sl {
		if item == value {
			return true
		}
	}
	return false
}

// Intersects сообщает, пересекаются ли два набора.
func (sl StringList) Intersects(other StringList) bool {
	if len(sl) == 0 || len(other) == 0 {
		return false
	}
	seen := make(map[string]bool, len(sl))
	for _, item := range sl {
		seen[item] = true
	}
	for _, item := range other {
		if seen[item] {
			return true
		}
	}
	return false
}
