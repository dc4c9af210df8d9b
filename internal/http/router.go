package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"nba-scoreboard-service/internal/http/handlers"
	"nba-scoreboard-service/internal/http/middleware"
	"nba-scoreboard-service/internal/metrics"
)

// NewRouter registers routes and wraps them with CORS and request logging.
// CORS is required here: the consumer is a browser-extension popup calling
// cross-origin.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, allowedOrigins []string) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger, recorder))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/scores", handler.Scores)
	r.Post("/scores/refresh", handler.RefreshScores)
	r.Get("/standings", handler.Standings)
	r.Post("/standings/refresh", handler.RefreshStandings)
	r.Get("/ratelimit", handler.RateLimitStatus)
	r.Get("/summary", handler.Summary)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	})
	return c.Handler(r)
}
