// Package overview показывает главную страницу back-office со сводкой.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

type Service interface {
	Overview(ctx context.Context) (*admin.Overview, error)
}

type Handler struct {
	log   *slog.Logger
	admin Service
	view  handlers.View
}

func New(log *slog.Logger, svc Service, v handlers.View) *Handler {
	return &Handler{log: log, admin: svc, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ov, err := h.admin.Overview(r.Context())
	if err != nil {
		log.Error("failed to load overview", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_overview", view.Page{Title: "Admin Dashboard", Data: ov})
}
