// Package profile показывает и изменяет профиль вошедшего пользователя.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	profilesvc "github.com/magabrotheeeer/rentify-web/internal/services/profile"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const LoadFailed = "Failed to load profile."

// Request — поля формы профиля.
type Request struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

type Service interface {
	Get(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, upd models.UserUpdate) (*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	profile Service
	view    handlers.View
}

func New(log *slog.Logger, profile Service, v handlers.View) *Handler {
	return &Handler{log: log, profile: profile, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method == http.MethodPost {
		h.update(w, r, log)
		return
	}

	u, err := h.profile.Get(r.Context())
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), LoadFailed)
		return
	}
	h.view.Render(w, r, http.StatusOK, "profile", view.Page{Title: "My Profile", Data: u})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, "/profile", "invalid request body")
		return
	}

	u, err := h.profile.Update(r.Context(), models.UserUpdate{Name: req.Name, Email: req.Email})
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Info("profile update failed", sl.Err(err))
		msg, ok := validation.Message(err)
		if !ok {
			msg = profilesvc.FailureNotice(err)
		}
		h.view.Render(w, r, handlers.StatusFor(err), "profile", view.Page{
			Title: "My Profile",
			Error: msg,
			Data:  &models.User{Name: req.Name, Email: req.Email},
		})
		return
	}

	log.Info("profile updated")
	h.view.Done(w, r, "/profile", profilesvc.SuccessNotice, u)
}
