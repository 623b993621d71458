package handlers

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"Proektbot/internal/export"
	"Proektbot/internal/models"
	"Proektbot/internal/utils"
)

// handleAdminCommand выполняет административные команды. Доступ только
// пользователям с is_admin.
func (bh *BotHandler) handleAdminCommand(chatID int64, user *models.User, command, args string) {
	if user == nil || !user.IsAdmin {
		bh.sendMessage(chatID, "Команда доступна только администраторам.")
		return
	}
	args = strings.TrimSpace(args)

	switch command {
	case "stats":
		bh.sendStats(chatID)

	case "block", "unblock":
		targetID := parseID(args)
		if targetID == 0 {
			bh.sendMessage(chatID, "Использование: /"+command+" <ID пользователя>")
			return
		}
		blocked := command == "block"
		ok, err := bh.Deps.Store.SetUserBlocked(targetID, blocked)
		if err != nil {
			bh.sendMessage(chatID, "Ошибка, попробуйте позже.")
			return
		}
		if !ok {
			bh.sendMessage(chatID, "Пользователь с ID "+args+" не найден.")
			return
		}
		if blocked {
			bh.sendMessage(chatID, "🚫 Пользователь "+args+" заблокирован.")
		} else {
			bh.sendMessage(chatID, "✅ Пользователь "+args+" разблокирован.")
		}

	case "admin_add", "admin_remove":
		phone, err := utils.ValidatePhoneNumber(args)
		if err != nil {
			bh.sendMessage(chatID, "Использование: /"+command+" <телефон>. "+err.Error())
			return
		}
		if command == "admin_add" {
			if err := bh.Deps.Store.AddAdminPhone(phone); err != nil {
				bh.sendMessage(chatID, "Ошибка, попробуйте позже.")
				return
			}
			bh.sendMessage(chatID, "✅ Телефон "+phone+" добавлен в белый список администраторов.")
		} else {
			removed, err := bh.Deps.Store.RemoveAdminPhone(phone)
			if err != nil {
				bh.sendMessage(chatID, "Ошибка, попробуйте позже.")
				return
			}
			if removed {
				bh.sendMessage(chatID, "✅ Телефон "+phone+" удален из белого списка.")
			} else {
				bh.sendMessage(chatID, "Телефона "+phone+" нет в белом списке.")
			}
		}

	case "report_reviews":
		report, err := export.ReviewsReport(bh.Deps.Store)
		bh.sendReport(chatID, report, err)
	case "report_users":
		report, err := export.UsersReport(bh.Deps.Store)
		bh.sendReport(chatID, report, err)
	case "report_stats":
		report, err := export.StatsReport(bh.Deps.Store)
		bh.sendReport(chatID, report, err)
	}
}

// sendStats отправляет сводные показатели текстом.
func (bh *BotHandler) sendStats(chatID int64) {
	stats, err := bh.Deps.Store.CountStats()
	if err != nil {
		bh.sendMessage(chatID, "Не удалось собрать статистику, попробуйте позже.")
		return
	}
	text := fmt.Sprintf(
		"📊 Статистика\n\nПользователей: %d\nЗаказчиков: %d\nИсполнителей: %d\nЗаказов: %d\nВ работе: %d",
		stats.Users, stats.Customers, stats.Executors, stats.Orders, stats.InWork,
	)
	bh.sendMessage(chatID, text)
}

// sendReport отправляет xlsx-отчет документом в чат.
func (bh *BotHandler) sendReport(chatID int64, report *export.Report, err error) {
	if err != nil {
		log.Printf("sendReport: ошибка генерации отчета: %v", err)
		bh.sendMessage(chatID, "Не удалось сформировать отчет, попробуйте позже.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.FileName,
		Bytes: report.Data,
	})
	if _, err := bh.Deps.BotClient.Send(doc); err != nil {
		log.Printf("sendReport: ошибка отправки отчета chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "Не удалось отправить отчет.")
	}
}
