package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lojasmm/calbot/internal/line"
	"github.com/lojasmm/calbot/internal/logger"
	"github.com/lojasmm/calbot/internal/metrics"
)

const healthText = "LINE Bot is running."

// NewRouter wires the public routes:
//
//	GET  /          health check
//	POST /callback  LINE webhook
//	GET  /metrics   Prometheus
func NewRouter(log *logger.Logger, webhook *line.WebhookHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withTraceID(log))
	r.Use(withLogging)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(healthText))
	})

	r.Post("/callback", webhook.HandleCallback)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
