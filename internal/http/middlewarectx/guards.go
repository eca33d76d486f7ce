// Package middlewarectx содержит HTTP middleware: охрану маршрутов по сессии
// и роли, ограничение частоты запросов и метрики.
//
// Пока сессия восстанавливается, охрана показывает нейтральную страницу загрузки
// и ничего не решает. Только после загрузки проверяются вход и роль.
package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/response"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/session"
)

// Responder — то, чем охрана отвечает браузеру.
type Responder interface {
	Loading(w http.ResponseWriter, r *http.Request)
	Redirect(w http.ResponseWriter, r *http.Request, to string)
	Fail(w http.ResponseWriter, r *http.Request, status int, to, msg string)
}

// Area — для кого предназначен маршрут.
type Area int

const (
	// AreaAny пропускает любую роль.
	AreaAny Area = iota
	// AreaCustomer отправляет администратора в back-office.
	AreaCustomer
)

// Guards — охрана маршрутов.
type Guards struct {
	log  *slog.Logger
	resp Responder
}

func NewGuards(log *slog.Logger, resp Responder) *Guards {
	return &Guards{log: log, resp: resp}
}

// GuardOption настраивает RequireSession.
type GuardOption func(*guardOptions)

type guardOptions struct {
	notice string
}

// WithNotice — уведомление, которое гость увидит на странице входа.
func WithNotice(msg string) GuardOption {
	return func(o *guardOptions) { o.notice = msg }
}

// state возвращает сессию запроса; loading == true, если решать ещё рано.
func state(r *http.Request) (sess *session.Session, loading bool) {
	st, ok := session.FromContext(r.Context())
	if !ok || st.Loading() {
		return nil, true
	}
	return st.Current(), false
}

func wantsJSON(r *http.Request) bool {
	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}

func (g *Guards) deny(w http.ResponseWriter, r *http.Request, status int, to, notice string) {
	g.log.Debug("route guard redirect",
		slog.String("path", r.URL.Path),
		slog.String("to", to),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	if wantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, response.Error(http.StatusText(status)))
		return
	}
	if notice != "" {
		if st, ok := session.FromContext(r.Context()); ok {
			st.Notice(notice)
		}
	}
	g.resp.Redirect(w, r, to)
}

// PublicOnly — страницы для гостей. Вошедший пользователь уходит на свою домашнюю страницу.
func (g *Guards) PublicOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, loading := state(r)
		if loading {
			g.resp.Loading(w, r)
			return
		}
		if sess != nil {
			g.deny(w, r, http.StatusForbidden, sess.Role.Home(), "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession пускает только вошедших. Гостя отправляет на /login.
func (g *Guards) RequireSession(area Area, opts ...GuardOption) func(http.Handler) http.Handler {
	var o guardOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, loading := state(r)
			switch {
			case loading:
				g.resp.Loading(w, r)
			case sess == nil:
				g.deny(w, r, http.StatusUnauthorized, "/login", o.notice)
			case area == AreaCustomer && sess.IsAdmin():
				g.deny(w, r, http.StatusForbidden, models.RoleAdmin.Home(), "")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAdmin пускает только администратора. Клиента отправляет в личный кабинет.
func (g *Guards) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, loading := state(r)
		switch {
		case loading:
			g.resp.Loading(w, r)
		case sess == nil:
			g.deny(w, r, http.StatusUnauthorized, "/login", "")
		case !sess.IsAdmin():
			g.deny(w, r, http.StatusForbidden, models.RoleCustomer.Home(), "")
		default:
			next.ServeHTTP(w, r)
		}
	})
}
