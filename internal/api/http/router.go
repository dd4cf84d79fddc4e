package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/bookstore-inventory/platform/health/http"
	"github.com/shestoi/bookstore-inventory/platform/observability"
)

// NewRouter создаёт и настраивает HTTP роутер Inventory Service
// readiness — функция готовности сервиса для health endpoint (может быть nil).
// logger используется для observability HTTP middleware (trace_id в логах).
func NewRouter(handler *Handler, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос
	if logger != nil {
		router.Use(observability.HTTPMiddleware("inventory", logger))
	}

	// Фронтенд раздаётся отдельно, поэтому CORS открыт для любого origin
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	router.Route("/api/books", func(r chi.Router) {
		r.Get("/", handler.ListBooks)
		r.Post("/", handler.CreateBook)
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.UpdateBook(w, r, chi.URLParam(r, "id"))
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.DeleteBook(w, r, chi.URLParam(r, "id"))
		})
	})

	// Health без CORS-ограничений не нуждается в отдельной ветке
	router.Get("/health", platformhealth.Handler(readiness))

	return router
}
