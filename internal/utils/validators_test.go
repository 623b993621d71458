package utils

import (
	"testing"
	"time"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"+79001234567", "+79001234567", false},
		{"89001234567", "+79001234567", false},
		{"79001234567", "+79001234567", false},
		{"9001234567", "+79001234567", false},
		{"8 (900) 123-45-67", "+79001234567", false},
		{"+7 900 123 45 67", "+79001234567", false},
		{"+19001234567", "", true},
		{"12345", "", true},
		{"телефон", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ValidatePhoneNumber(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ValidatePhoneNumber(%q): ожидалась ошибка, получено %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidatePhoneNumber(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidatePhoneNumber(%q) = %q, ожидалось %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"Иван", "Анна-Мария", "John Smith", "Ёлкина"}
	for _, name := range valid {
		if _, err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q): %v", name, err)
		}
	}

	invalid := []string{"И", "Иван123", "Иван!", ""}
	for _, name := range invalid {
		if _, err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q): ожидалась ошибка", name)
		}
	}
}

func TestValidateURL(t *testing.T) {
	if got, err := ValidateURL("https://hh.ru/resume/abc"); err != nil || got == "" {
		t.Errorf("ValidateURL: %v", err)
	}
	for _, raw := range []string{"hh.ru/resume", "ftp://host/file", "просто текст", ""} {
		if _, err := ValidateURL(raw); err == nil {
			t.Errorf("ValidateURL(%q): ожидалась ошибка", raw)
		}
	}
}

func TestValidateDeadline(t *testing.T) {
	future := time.Now().AddDate(0, 1, 0)
	wantISO := future.Format("2006-01-02")

	got, err := ValidateDeadline(future.Format("02.01.2006"))
	if err != nil {
		t.Fatalf("ValidateDeadline(ДД.ММ.ГГГГ): %v", err)
	}
	if got != wantISO {
		t.Errorf("ValidateDeadline = %q, ожидалось %q", got, wantISO)
	}

	got, err = ValidateDeadline(wantISO)
	if err != nil {
		t.Fatalf("ValidateDeadline(ГГГГ-ММ-ДД): %v", err)
	}
	if got != wantISO {
		t.Errorf("ValidateDeadline = %q, ожидалось %q", got, wantISO)
	}

	past := time.Now().AddDate(0, 0, -7).Format("02.01.2006")
	if _, err := ValidateDeadline(past); err == nil {
		t.Error("дата в прошлом должна отклоняться")
	}
	for _, raw := range []string{"31.02.2030", "завтра", ""} {
		if _, err := ValidateDeadline(raw); err == nil {
			t.Errorf("ValidateDeadline(%q): ожидалась ошибка", raw)
		}
	}
}

func TestValidatePrice(t *testing.T) {
	valid := map[string]string{
		"150000":     "150000",
		"150 000":    "150 000",
		"1500,50":    "1500,50",
		"договорная": "договорная",
		"Договорная": "договорная",
	}
	for input, want := range valid {
		got, err := ValidatePrice(input)
		if err != nil {
			t.Errorf("ValidatePrice(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ValidatePrice(%q) = %q, ожидалось %q", input, got, want)
		}
	}

	for _, input := range []string{"дорого", "-100", "100 рублей", ""} {
		if _, err := ValidatePrice(input); err == nil {
			t.Errorf("ValidatePrice(%q): ожидалась ошибка", input)
		}
	}
}
