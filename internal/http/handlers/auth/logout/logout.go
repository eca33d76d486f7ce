// Package logout завершает сессию и стирает сохранённый токен.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/session"
)

type Handler struct {
	log  *slog.Logger
	view handlers.View
}

func New(log *slog.Logger, v handlers.View) *Handler {
	return &Handler{log: log, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if st, ok := session.FromContext(r.Context()); ok {
		if sess := st.Current(); sess != nil {
			log.Info("logout", slog.String("subject", sess.Subject))
		}
		st.Logout()
	}
	h.view.Done(w, r, "/login", "", nil)
}
