// Пакет export — генерация Excel-отчетов для администраторов.
package export

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"Proektbot/internal/db"
	"Proektbot/internal/utils"
)

// Report — готовый к отправке файл отчета.
type Report struct {
	FileName string
	Data     []byte
}

func newSheet(f *excelize.File, name string, headers []string) {
	index, _ := f.NewSheet(name)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(name, cell, header)
	}
}

func finishReport(f *excelize.File, prefix string) (*Report, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка записи отчета в буфер: %w", err)
	}
	return &Report{
		FileName: fmt.Sprintf("%s_%s.xlsx", prefix, uuid.New().String()[:8]),
		Data:     buf.Bytes(),
	}, nil
}

// ReviewsReport выгружает все оценки и отзывы.
func ReviewsReport(store *db.Store) (*Report, error) {
	ratings, err := store.ListRatings()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Отзывы"
	newSheet(f, sheet, []string{"ID", "Заказ", "От кого (ID)", "Кому (ID)", "Звезды", "Отзыв", "Дата"})

	rowIndex := 2
	for _, r := range ratings {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIndex), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIndex), r.OrderID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIndex), r.FromUserID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIndex), r.ToUserID)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowIndex), r.Stars)
		if r.Review.Valid {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", rowIndex), r.Review.String)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowIndex), r.CreatedAt.Format("02.01.2006 15:04"))
		rowIndex++
	}
	log.Printf("ReviewsReport: выгружено %d оценок.", len(ratings))
	return finishReport(f, "reviews")
}

// UsersReport выгружает всех пользователей с ролями и рейтингом.
func UsersReport(store *db.Store) (*Report, error) {
	users, err := store.ListUsers()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Пользователи"
	newSheet(f, sheet, []string{"ID", "Телефон", "Имя", "Фамилия", "Организация", "Заказчик", "Исполнитель", "Админ", "Заблокирован", "Рейтинг", "Оценок", "Регистрация"})

	boolMark := func(v bool) string {
		if v {
			return "да"
		}
		return "нет"
	}

	rowIndex := 2
	for i := range users {
		u := &users[i]
		avg, count, err := store.RatingSummary(u.ID)
		if err != nil {
			log.Printf("UsersReport: ошибка подсчета рейтинга пользователя ID %d: %v", u.ID, err)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIndex), u.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIndex), utils.FormatPhoneNumber(u.Phone))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIndex), u.FirstName.String)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIndex), u.LastName.String)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowIndex), u.OrgName.String)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowIndex), boolMark(u.IsCustomer))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowIndex), boolMark(u.IsExecutor))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowIndex), boolMark(u.IsAdmin))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", rowIndex), boolMark(u.Blocked))
		if count > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", rowIndex), fmt.Sprintf("%.1f", avg))
		}
		f.SetCellValue(sheet, fmt.Sprintf("K%d", rowIndex), count)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", rowIndex), u.CreatedAt.Format("02.01.2006"))
		rowIndex++
	}
	log.Printf("UsersReport: выгружено %d пользователей.", len(users))
	return finishReport(f, "users")
}

// StatsReport выгружает сводную статистику и взаимные пары.
func StatsReport(store *db.Store) (*Report, error) {
	stats, err := store.CountStats()
	if err != nil {
		return nil, err
	}
	mutual, err := store.ListMutualMatches()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Статистика"
	newSheet(f, sheet, []string{"Показатель", "Значение"})

	metrics := []struct {
		name  string
		value int
	}{
		{"Пользователей", stats.Users},
		{"Заказчиков", stats.Customers},
		{"Исполнителей", stats.Executors},
		{"Заказов", stats.Orders},
		{"Заказов в работе", stats.InWork},
		{"Взаимных пар", len(mutual)},
	}
	for i, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), m.name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), m.value)
	}

	pairSheet := "Взаимные пары"
	if _, err := f.NewSheet(pairSheet); err != nil {
		return nil, fmt.Errorf("ошибка создания листа отчета: %w", err)
	}
	f.SetCellValue(pairSheet, "A1", "Заказ")
	f.SetCellValue(pairSheet, "B1", "Исполнитель (ID)")
	f.SetCellValue(pairSheet, "C1", "Обновлено")
	for i, m := range mutual {
		f.SetCellValue(pairSheet, fmt.Sprintf("A%d", i+2), m.OrderID)
		f.SetCellValue(pairSheet, fmt.Sprintf("B%d", i+2), m.ExecutorID)
		f.SetCellValue(pairSheet, fmt.Sprintf("C%d", i+2), m.UpdatedAt.Format("02.01.2006 15:04"))
	}
	return finishReport(f, "stats")
}
