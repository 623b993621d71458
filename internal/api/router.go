// Пакет api — административный HTTP API поверх chi.
package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Proektbot/internal/config"
	"Proektbot/internal/db"
)

// ApiDependencies содержит зависимости обработчиков API.
type ApiDependencies struct {
	Config *config.Config
	Store  *db.Store
}

// SetupRoutes настраивает маршруты API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	h := &apiHandlers{deps: deps}

	r.Get("/healthz", h.Healthz)
	r.Get("/api/qr", h.BotQR)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.Config.APIAdminToken))

		r.Get("/api/stats", h.GetStats)
		r.Get("/api/users", h.GetUsers)
		r.Post("/api/users/{id}/block", h.BlockUser)
		r.Post("/api/users/{id}/unblock", h.UnblockUser)
		r.Get("/api/reports/{kind}.xlsx", h.GetReport)
	})
}

// AuthMiddleware проверяет заголовок X-Admin-Token.
// Пустой настроенный токен запрещает доступ целиком.
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "неверный или отсутствующий X-Admin-Token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
