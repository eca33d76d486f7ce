// Package health отвечает на проверку живости. Если сессии хранятся в Redis,
// недоступный Redis делает сервис неготовым.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/response"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
)

// Pinger — зависимость, без которой сервис не работает.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log     *slog.Logger
	pingers map[string]Pinger
}

func New(log *slog.Logger, pingers map[string]Pinger) *Handler {
	return &Handler{log: log, pingers: pingers}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	checks := make(map[string]string, len(h.pingers))
	healthy := true
	for name, p := range h.pingers {
		if err := p.Ping(r.Context()); err != nil {
			h.log.Error("dependency is down", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := "ok"
	if !healthy {
		status = "degraded"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response.OK(map[string]any{
		"status": status,
		"checks": checks,
	}))
}
