package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bazaar/infras/postgres"
	"bazaar/transport/http/response"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency answers.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
}

func New(conn *postgres.Connection, client *goRedis.Client) Handler {
	return NewWithChecks(map[string]Check{
		"postgres": func(ctx context.Context) error { return conn.Write.PingContext(ctx) },
		"redis":    func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
}

func NewWithChecks(checks map[string]Check) Handler {
	return Handler{checks: checks}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health reports readiness of the database and cache.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	res := Status{Status: "ok", Dependencies: make(map[string]string, len(handler.checks))}

	for name, check := range handler.checks {
		if err := check(ctx); err != nil {
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			res.Status = "degraded"
			res.Dependencies[name] = "down"

			continue
		}

		res.Dependencies[name] = "up"
	}

	if res.Status != "ok" {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
