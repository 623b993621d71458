package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"Proektbot/internal/export"
)

// jsonResponse — единый формат ответа API.
type jsonResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload jsonResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("writeJSON: ошибка кодирования ответа: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, jsonResponse{Status: "success", Message: message, Data: data})
}

type apiHandlers struct {
	deps ApiDependencies
}

// Healthz — проверка живости сервиса.
func (h *apiHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, "ok", nil)
}

// GetStats отдает сводную статистику по боту.
func (h *apiHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Store.CountStats()
	if err != nil {
		log.Printf("GetStats: ошибка получения статистики: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "не удалось получить статистику")
		return
	}
	writeJSONSuccess(w, "статистика", stats)
}

// GetUsers возвращает список пользователей.
func (h *apiHandlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.Store.ListUsers()
	if err != nil {
		log.Printf("GetUsers: ошибка получения пользователей: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "не удалось получить пользователей")
		return
	}
	writeJSONSuccess(w, "пользователи", users)
}

func (h *apiHandlers) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	idStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "некорректный id пользователя")
		return
	}

	updated, err := h.deps.Store.SetUserBlocked(userID, blocked)
	if err != nil {
		log.Printf("setBlocked: ошибка обновления пользователя %d: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "не удалось обновить пользователя")
		return
	}
	if !updated {
		writeJSONError(w, http.StatusNotFound, "пользователь не найден")
		return
	}

	action := "разблокирован"
	if blocked {
		action = "заблокирован"
	}
	writeJSONSuccess(w, fmt.Sprintf("пользователь %d %s", userID, action), nil)
}

// BlockUser блокирует пользователя по id.
func (h *apiHandlers) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

// UnblockUser снимает блокировку с пользователя.
func (h *apiHandlers) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

// GetReport формирует Excel-отчет и отдает его файлом.
// Поддерживаемые виды: reviews, users, stats.
func (h *apiHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var (
		report *export.Report
		err    error
	)
	switch kind {
	case "reviews":
		report, err = export.ReviewsReport(h.deps.Store)
	case "users":
		report, err = export.UsersReport(h.deps.Store)
	case "stats":
		report, err = export.StatsReport(h.deps.Store)
	default:
		writeJSONError(w, http.StatusNotFound, "неизвестный вид отчета")
		return
	}
	if err != nil {
		log.Printf("GetReport: ошибка формирования отчета %s: %v", kind, err)
		writeJSONError(w, http.StatusInternalServerError, "не удалось сформировать отчет")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	if _, err := w.Write(report.Data); err != nil {
		log.Printf("GetReport: ошибка отправки отчета %s: %v", kind, err)
	}
}

// BotQR отдает PNG с QR-кодом на диплинк бота.
func (h *apiHandlers) BotQR(w http.ResponseWriter, r *http.Request) {
	if h.deps.Config.BotUsername == "" {
		writeJSONError(w, http.StatusServiceUnavailable, "имя бота не настроено")
		return
	}

	link := fmt.Sprintf("https://t.me/%s", h.deps.Config.BotUsername)
	png, err := qrcode.Encode(link, qrcode.Medium, 512)
	if err != nil {
		log.Printf("BotQR: ошибка генерации QR-кода: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "не удалось сгенерировать QR-код")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("BotQR: ошибка отправки QR-кода: %v", err)
	}
}
