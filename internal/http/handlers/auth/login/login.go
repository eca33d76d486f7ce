// Package login реализует HTTP-обработчик входа.
//
// GET показывает форму, POST проверяет поля, получает токен у API и сохраняет
// его в сессии. После входа пользователь уходит на домашнюю страницу своей роли.
// Ошибка входа показывается рядом с формой: сообщение сервера или "Login failed".
package login

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const (
	// FailedMessage — текст, если сервер не объяснил отказ.
	FailedMessage = "Login failed"
	// SuccessNotice — уведомление после входа.
	SuccessNotice = "Login successful!"
)

// Request — поля формы входа.
type Request struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Handler обрабатывает вход.
type Handler struct {
	log  *slog.Logger
	auth Service
	view handlers.View
}

func New(log *slog.Logger, auth Service, v handlers.View) *Handler {
	return &Handler{log: log, auth: auth, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "login", view.Page{Title: "Sign In", Data: view.LoginForm{}})
		return
	}
	h.submit(w, r)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Render(w, r, http.StatusBadRequest, "login", view.Page{
			Title: "Sign In",
			Error: "invalid request body",
			Data:  view.LoginForm{},
		})
		return
	}

	creds := models.Credentials{Email: strings.TrimSpace(req.Email), Password: req.Password}
	form := view.LoginForm{Email: creds.Email}

	if err := validation.Struct(creds); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.view.Render(w, r, http.StatusUnprocessableEntity, "login", view.Page{Title: "Sign In", Error: err.Error(), Data: form})
		return
	}

	token, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		h.view.Render(w, r, handlers.StatusFor(err), "login", view.Page{
			Title: "Sign In",
			Error: apiclient.MessageOf(err, FailedMessage),
			Data:  form,
		})
		return
	}

	st, ok := session.FromContext(r.Context())
	if !ok {
		log.Error("session store missing from context")
		h.view.Error(w, r, http.StatusInternalServerError, FailedMessage)
		return
	}
	if err := st.Login(token); err != nil {
		log.Error("failed to start session", sl.Err(err))
		h.view.Render(w, r, http.StatusBadGateway, "login", view.Page{Title: "Sign In", Error: FailedMessage, Data: form})
		return
	}

	sess := st.Current()
	log.Info("login success", slog.String("subject", sess.Subject), slog.String("role", sess.Role.String()))
	h.view.Done(w, r, sess.Role.Home(), SuccessNotice, map[string]string{
		"role":     sess.Role.String(),
		"redirect": sess.Role.Home(),
	})
}
