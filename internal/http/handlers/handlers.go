// Package handlers содержит общее для HTTP-обработчиков: контракт отрисовки
// страниц и разбор параметров маршрута.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// View — отрисовка страниц и завершение действий (редирект с уведомлением).
type View interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, p view.Page)
	Redirect(w http.ResponseWriter, r *http.Request, to string)
	Done(w http.ResponseWriter, r *http.Request, to, notice string, data any)
	Fail(w http.ResponseWriter, r *http.Request, status int, to, msg string)
	Error(w http.ResponseWriter, r *http.Request, status int, msg string)
}

// ErrBadID — параметр маршрута не является положительным числом.
var ErrBadID = errors.New("invalid id")

// ID разбирает числовой параметр маршрута.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}

// Confirmed сообщает, что пользователь подтвердил деструктивное действие.
func Confirmed(r *http.Request) bool {
	return r.FormValue("confirm") == "yes"
}

// StatusFor подбирает HTTP-статус для ошибки: 422 для ошибки ввода, 4xx от API
// пробрасывается как есть, иначе 502.
func StatusFor(err error) int {
	if _, ok := validation.Message(err); ok {
		return http.StatusUnprocessableEntity
	}
	if e, ok := apiclient.AsAPIError(err); ok && e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}

// SessionExpired — уведомление, когда API отверг токен.
const SessionExpired = "Your session has expired. Please sign in again."

// Expired отправляет на /login, если API ответил 401. Сессия к этому моменту
// уже завершена клиентом API.
func Expired(v View, w http.ResponseWriter, r *http.Request, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	v.Fail(w, r, http.StatusUnauthorized, "/login", SessionExpired)
	return true
}

// ConfirmRequired — ответ JSON-клиенту, который не передал confirm=yes.
const ConfirmRequired = "confirmation required"

// AskConfirm показывает страницу подтверждения деструктивного действия.
// Запрос к API при этом не отправляется.
func AskConfirm(v View, w http.ResponseWriter, r *http.Request, title, question, back string) {
	if view.WantsJSON(r) {
		v.Fail(w, r, http.StatusPreconditionRequired, back, ConfirmRequired)
		return
	}
	v.Render(w, r, http.StatusOK, "confirm", view.Page{
		Title: title,
		Data:  view.ConfirmData{Question: question, Action: r.URL.Path, Back: back},
	})
}

// Actor — кто выполняет действие, для журнала аудита.
func Actor(r *http.Request) string {
	if sess := session.Current(r.Context()); sess != nil {
		return sess.Subject
	}
	return ""
}
