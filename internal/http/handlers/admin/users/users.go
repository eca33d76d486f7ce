// Package users управляет пользователями: список, смена роли, правка
// имени и почты, удаление с подтверждением.
package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const (
	back = "/admin/users"

	RoleChanged = "User role updated."
	Updated     = "User updated."
	Deleted     = "User deleted."
)

// UpdateRequest — поля формы пользователя.
type UpdateRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

// RoleRequest — новая роль.
type RoleRequest struct {
	Role string `json:"role" form:"role"`
}

type Service interface {
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	ChangeRole(ctx context.Context, actor string, id int64, role models.Role) error
	UpdateUser(ctx context.Context, actor string, id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, actor string, id int64, confirmed bool) error
}

type Handler struct {
	log   *slog.Logger
	admin Service
	view  handlers.View
}

func New(log *slog.Logger, svc Service, v handlers.View) *Handler {
	return &Handler{log: log, admin: svc, view: v}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List показывает всех пользователей.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.users.list")

	users, err := h.admin.Users(r.Context())
	if err != nil {
		log.Error("failed to load users", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_users", view.Page{Title: "Manage Users", Data: users})
}

// Edit показывает форму пользователя.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.users.edit")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "User not found.")
		return
	}
	u, err := h.admin.User(r.Context(), id)
	if err != nil {
		log.Error("failed to load user", slog.Int64("user_id", id), sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		if errors.Is(err, admin.ErrUserNotFound) {
			h.view.Fail(w, r, http.StatusNotFound, back, "User not found.")
			return
		}
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_user_edit", view.Page{Title: "Edit User", Data: u})
}

// Update сохраняет имя и почту пользователя.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.users.update")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "User not found.")
		return
	}
	var req UpdateRequest
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, back, "invalid request body")
		return
	}

	u, err := h.admin.UpdateUser(r.Context(), handlers.Actor(r), id, models.UserUpdate{Name: req.Name, Email: req.Email})
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Info("user update failed", slog.Int64("user_id", id), sl.Err(err))
		msg, ok := validation.Message(err)
		if !ok {
			msg = admin.FailureNotice(err, admin.UpdateUserFailed)
		}
		h.view.Render(w, r, handlers.StatusFor(err), "admin_user_edit", view.Page{
			Title: "Edit User",
			Error: msg,
			Data:  &models.User{ID: id, Name: req.Name, Email: req.Email},
		})
		return
	}
	h.view.Done(w, r, back, Updated, u)
}

// ChangeRole назначает пользователю роль.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.users.role")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "User not found.")
		return
	}
	var req RoleRequest
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, back, "invalid request body")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		h.view.Fail(w, r, http.StatusUnprocessableEntity, back, admin.ChangeRoleFailed)
		return
	}

	err = h.admin.ChangeRole(r.Context(), handlers.Actor(r), id, role)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to change role", slog.Int64("user_id", id), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.FailureNotice(err, admin.ChangeRoleFailed))
		return
	}
	h.done(w, r, RoleChanged)
}

// Delete удаляет пользователя. Без confirm=yes показывает страницу подтверждения.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.users.delete")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "User not found.")
		return
	}
	if !handlers.Confirmed(r) {
		handlers.AskConfirm(h.view, w, r, "Delete User", admin.ConfirmDeleteUser, back)
		return
	}

	err = h.admin.DeleteUser(r.Context(), handlers.Actor(r), id, true)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to delete user", slog.Int64("user_id", id), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.FailureNotice(err, admin.DeleteUserFailed))
		return
	}
	h.done(w, r, Deleted)
}

// done завершает изменение. JSON-клиент получает список, перечитанный с сервера;
// если перечитать не удалось, изменение всё равно считается успешным.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, notice string) {
	var data any
	if view.WantsJSON(r) {
		users, err := h.admin.Users(r.Context())
		if err != nil {
			h.logger(r, "handlers.admin.users.refetch").Warn("failed to refetch users", sl.Err(err))
		} else {
			data = users
		}
	}
	h.view.Done(w, r, back, notice, data)
}
