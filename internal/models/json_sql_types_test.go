package models

import "testing"

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"АР", "КР", "ЭОМ"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var restored StringList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(restored) != len(list) {
		t.Fatalf("после восстановления %d элементов, ожидалось %d", len(restored), len(list))
	}
	for i := range list {
		if restored[i] != list[i] {
			t.Errorf("элемент %d = %q, ожидалось %q", i, restored[i], list[i])
		}
	}
}

func TestStringListScanNull(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if len(list) != 0 {
		t.Errorf("NULL должен читаться как пустой список, получено %v", list)
	}

	if err := list.Scan(""); err != nil {
		t.Fatalf("Scan(\"\"): %v", err)
	}
	if len(list) != 0 {
		t.Errorf("пустая строка должна читаться как пустой список, получено %v", list)
	}

	if err := list.Scan(42); err == nil {
		t.Error("Scan с неожиданным типом должен вернуть ошибку")
	}
}

func TestStringListContainsAndIntersects(t *testing.T) {
	list := StringList{"АР", "КР"}
	if !list.Contains("АР") || list.Contains("ЭОМ") {
		t.Error("Contains работает неверно")
	}

	if !list.Intersects(StringList{"ЭОМ", "КР"}) {
		t.Error("пересечение по КР не найдено")
	}
	if list.Intersects(StringList{"ЭОМ", "ВК"}) {
		t.Error("найдено несуществующее пересечение")
	}
	if list.Intersects(nil) || StringList(nil).Intersects(list) {
		t.Error("пустой набор ни с чем не пересекается")
	}
}
