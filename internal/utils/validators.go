package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)
var normalizedPhoneRegex = regexp.MustCompile(`^\+7\d{10}$`)

// ValidatePhoneNumber проверяет и нормализует номер телефона.
// Возвращает номер в формате +7XXXXXXXXXX или ошибку.
// ValidatePhoneNumber checks and normalizes a phone number.
// Returns the number in +7XXXXXXXXXX format or an error.
func ValidatePhoneNumber(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	digitsOnly := nonPhoneChars.ReplaceAllString(phone, "")

	if strings.HasPrefix(digitsOnly, "+") {
		if normalizedPhoneRegex.MatchString(digitsOnly) {
			return digitsOnly, nil
		}
		return "", fmt.Errorf("поддерживаются только российские номера в формате +7XXXXXXXXXX или 8XXXXXXXXXX")
	}

	switch {
	case len(digitsOnly) == 11 && (digitsOnly[0] == '8' || digitsOnly[0] == '7'):
		return "+7" + digitsOnly[1:], nil
	case len(digitsOnly) == 10:
		return "+7" + digitsOnly, nil
	}
	return "", fmt.Errorf("неверный формат номера телефона, укажите в формате +7XXXXXXXXXX или 8XXXXXXXXXX")
}

var nameRegex = regexp.MustCompile(`^[А-Яа-яЁёA-Za-z][А-Яа-яЁёA-Za-z \-]*$`)

// ValidateName проверяет имя или фамилию: буквы, пробел и дефис, от 2 до 50 символов.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	length := utf8.RuneCountInString(name)
	if length < 2 || length > 50 {
		return "", fmt.Errorf("имя должно содержать от 2 до 50 символов")
	}
	if !nameRegex.MatchString(name) {
		return "", fmt.Errorf("имя может содержать только буквы, пробел и дефис")
	}
	return name, nil
}

// ValidateURL проверяет, что строка — абсолютная http(s)-ссылка.
// ValidateURL checks that the string is an absolute http(s) link.
func ValidateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("ссылка должна начинаться с http:// или https:// и содержать адрес сайта")
	}
	return rawURL, nil
}

// ValidateDeadline проверяет дату срока и возвращает ее в формате ГГГГ-ММ-ДД.
// Поддерживаются форматы ДД.ММ.ГГГГ и ГГГГ-ММ-ДД; дата в прошлом отклоняется.
func ValidateDeadline(dateStr string) (string, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return "", fmt.Errorf("строка даты пуста")
	}

	var parsedDate time.Time
	var err error
	for _, format := range []string{"02.01.2006", "2006-01-02"} {
		parsedDate, err = time.ParseInLocation(format, dateStr, time.Local)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("некорректный формат даты: '%s'. Укажите дату в формате ДД.ММ.ГГГГ", dateStr)
	}

	today := time.Now().In(time.Local).Truncate(24 * time.Hour)
	if parsedDate.Before(today) {
		return "", fmt.Errorf("срок не может быть в прошлом")
	}
	return parsedDate.Format("2006-01-02"), nil
}

var priceDigitsRegex = regexp.MustCompile(`^\d[\d ]*(?:[.,]\d{1,2})?$`)

// ValidatePrice принимает сумму в рублях или слово "договорная".
func ValidatePrice(priceStr string) (string, error) {
	priceStr = strings.TrimSpace(priceStr)
	if strings.EqualFold(priceStr, "договорная") {
		return "договорная", nil
	}
	if priceDigitsRegex.MatchString(priceStr) {
		return priceStr, nil
	}
	return "", fmt.Errorf("укажите цену числом в рублях или словом 'договорная'")
}
