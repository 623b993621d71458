package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// FormatPhoneNumber форматирует номер телефона для отображения.
func FormatPhoneNumber(phone string) string {
	re := regexp.MustCompile(`[^\d+]`)
	cleanedPhone := re.ReplaceAllString(phone, "")
	if strings.HasPrefix(cleanedPhone, "+7") && len(cleanedPhone) == 12 {
		return fmt.Sprintf("+7 (%s) %s-%s-%s", cleanedPhone[2:5], cleanedPhone[5:8], cleanedPhone[8:10], cleanedPhone[10:12])
	}
	return phone
}

// FormatDateForDisplay переводит дату из ГГГГ-ММ-ДД в ДД.ММ.ГГГГ.
func FormatDateForDisplay(dateStr string) string {
	if dateStr == "" {
		return "не указан"
	}
	parsedDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return parsedDate.Format("02.01.2006")
}

func orDash(values []string) string {
	if len(values) == 0 {
		return "не указано"
	}
	return strings.Join(values, ", ")
}

// FormatOrderCard собирает карточку заказа для показа в чате.
// showContacts включает телефон заказчика (после взаимного выбора).
func FormatOrderCard(order *models.Order, customer *models.User, showContacts bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Заказ №%d: %s\n\n", order.ID, order.Name)
	fmt.Fprintf(&b, "Документация: %s\n", orDash(order.DocTypes))
	fmt.Fprintf(&b, "Тип строительства: %s\n", orDash(order.ConstructionTypes))
	if len(order.SectionsCapital) > 0 {
		fmt.Fprintf(&b, "Разделы (капстроительство): %s\n", strings.Join(order.SectionsCapital, ", "))
	}
	if len(order.SectionsLinear) > 0 {
		fmt.Fprintf(&b, "Разделы (линейные объекты): %s\n", strings.Join(order.SectionsLinear, ", "))
	}
	if order.Description.Valid && order.Description.String != "" {
		fmt.Fprintf(&b, "Описание: %s\n", order.Description.String)
	}
	fmt.Fprintf(&b, "Срок: %s\n", FormatDateForDisplay(order.Deadline.String))
	if order.Price.Valid && order.Price.String != "" {
		fmt.Fprintf(&b, "Цена: %s\n", order.Price.String)
	} else {
		b.WriteString("Цена: договорная\n")
	}
	if order.ExpertiseRequired.Valid {
		if order.ExpertiseRequired.Bool {
			b.WriteString("Прохождение экспертизы: требуется\n")
		} else {
			b.WriteString("Прохождение экспертизы: не требуется\n")
		}
	}
	if order.FilesLink.Valid && order.FilesLink.String != "" {
		fmt.Fprintf(&b, "Материалы: %s\n", order.FilesLink.String)
	}
	if showContacts && customer != nil {
		fmt.Fprintf(&b, "\n👤 Заказчик: %s", customer.FullName())
		if customer.OrgName.Valid && customer.OrgName.String != "" {
			fmt.Fprintf(&b, " (%s)", customer.OrgName.String)
		}
		fmt.Fprintf(&b, "\n📞 Телефон: %s\n", FormatPhoneNumber(customer.Phone))
	}
	return b.String()
}

// FormatExecutorCard собирает карточку исполнителя для показа заказчику.
// До взаимного выбора имя и контакты скрыты.
func FormatExecutorCard(profile *models.ExecutorProfile, rating float64, ratingCount int, showContacts bool) string {
	var b strings.Builder
	if showContacts {
		name := strings.TrimSpace(profile.FirstName.String + " " + profile.LastName.String)
		if name == "" {
			name = "Исполнитель"
		}
		fmt.Fprintf(&b, "👷 %s\n", name)
		if profile.OrgName.Valid && profile.OrgName.String != "" {
			fmt.Fprintf(&b, "Организация: %s\n", profile.OrgName.String)
		}
		fmt.Fprintf(&b, "📞 Телефон: %s\n\n", FormatPhoneNumber(profile.Phone))
	} else {
		fmt.Fprintf(&b, "👷 Исполнитель №%d\n\n", profile.UserID)
	}
	fmt.Fprintf(&b, "Опыт: %s\n", profile.Experience)
	fmt.Fprintf(&b, "Документация: %s\n", orDash(profile.DocTypes))
	fmt.Fprintf(&b, "Тип строительства: %s\n", orDash(profile.ConstructionTypes))
	if len(profile.SectionsCapital) > 0 {
		fmt.Fprintf(&b, "Разделы (капстроительство): %s\n", strings.Join(profile.SectionsCapital, ", "))
	}
	if len(profile.SectionsLinear) > 0 {
		fmt.Fprintf(&b, "Разделы (линейные объекты): %s\n", strings.Join(profile.SectionsLinear, ", "))
	}
	if profile.ResumeLink.Valid && profile.ResumeLink.String != "" {
		fmt.Fprintf(&b, "Резюме: %s\n", profile.ResumeLink.String)
	}
	if profile.ResumeText.Valid && profile.ResumeText.String != "" {
		fmt.Fprintf(&b, "О себе: %s\n", profile.ResumeText.String)
	}
	b.WriteString("\n" + FormatRating(rating, ratingCount))
	return b.String()
}

// FormatRating выводит рейтинг вида "⭐ 4.5 (12 оценок)" или заглушку.
func FormatRating(avg float64, count int) string {
	if count == 0 {
		return "⭐ Оценок пока нет"
	}
	return fmt.Sprintf("⭐ %.1f (оценок: %d)", avg, count)
}

// FormatOrderStatus переводит код статуса в человекочитаемый вид.
func FormatOrderStatus(status string) string {
	switch status {
	case constants.STATUS_OPEN:
		return "🟢 Открыт"
	case constants.STATUS_CLOSING_BY_CUSTOMER:
		return "🟡 Ожидает подтверждения исполнителя"
	case constants.STATUS_CLOSING_BY_EXECUTOR:
		return "🟡 Ожидает подтверждения заказчика"
	case constants.STATUS_CLOSED:
		return "🔴 Закрыт"
	}
	return status
}
