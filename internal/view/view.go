// Package view отрисовывает HTML-страницы из встроенных шаблонов.
//
// Клиент, который просит application/json, получает те же данные в обёртке
// response.Response вместо HTML. Уведомления (flash) показываются только в HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/response"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/session"
)

//go:embed templates/*.html
var files embed.FS

// Страницы, доступные для Render.
var pages = []string{
	"loading", "error", "landing", "login", "static",
	"cars", "car_detail", "dashboard", "bookings", "profile", "checkout", "confirm",
	"admin_overview", "admin_users", "admin_user_edit", "admin_cars", "admin_car_form",
	"admin_bookings", "admin_payments",
}

// Page — данные одной страницы для шаблона layout.
type Page struct {
	Title   string
	Session *session.Session
	Flashes []session.Flash
	Path    string
	// Error — ошибка формы, показывается рядом с формой, а не как уведомление.
	Error string
	Data  any
}

// Options — настройки отрисовки.
type Options struct {
	AppName        string
	CheckoutScript string
}

// Renderer хранит разобранные шаблоны.
type Renderer struct {
	log   *slog.Logger
	opts  Options
	pages map[string]*template.Template
}

// New разбирает все шаблоны. Ошибка означает битый шаблон в сборке.
func New(log *slog.Logger, opts Options) (*Renderer, error) {
	const op = "view.New"

	if opts.AppName == "" {
		opts.AppName = "Rentify"
	}
	v := &Renderer{
		log:   log,
		opts:  opts,
		pages: make(map[string]*template.Template, len(pages)),
	}
	for _, name := range pages {
		t, err := template.New("layout.html").
			Funcs(v.funcs()).
			ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// WantsJSON сообщает, что клиент просит JSON.
func WantsJSON(r *http.Request) bool {
	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}

// Render отдаёт страницу name со статусом status.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	if WantsJSON(r) {
		render.Status(r, status)
		if p.Error != "" {
			render.JSON(w, r, response.Error(p.Error))
			return
		}
		render.JSON(w, r, response.OK(p.Data))
		return
	}

	t, ok := v.pages[name]
	if !ok {
		v.log.Error("unknown page", slog.String("page", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if st, ok := session.FromContext(r.Context()); ok {
		if p.Session == nil {
			p.Session = st.Current()
		}
		p.Flashes = append(st.PopFlashes(), p.Flashes...)
	}
	p.Path = r.URL.Path

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		v.log.Error("failed to render page",
			slog.String("page", name),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Redirect — 303 See Other, чтобы после POST браузер перешёл по GET.
func (v *Renderer) Redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Done завершает успешное действие: HTML-клиент получает уведомление и
// редирект на to, JSON-клиент получает data.
func (v *Renderer) Done(w http.ResponseWriter, r *http.Request, to, notice string, data any) {
	if WantsJSON(r) {
		render.JSON(w, r, response.OK(data))
		return
	}
	if notice != "" {
		if st, ok := session.FromContext(r.Context()); ok {
			st.Notice(notice)
		}
	}
	v.Redirect(w, r, to)
}

// Fail завершает неудачное действие: HTML-клиент получает уведомление об
// ошибке и редирект на to, JSON-клиент получает status и текст ошибки.
func (v *Renderer) Fail(w http.ResponseWriter, r *http.Request, status int, to, msg string) {
	if WantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, response.Error(msg))
		return
	}
	if st, ok := session.FromContext(r.Context()); ok {
		st.Fail(msg)
	}
	v.Redirect(w, r, to)
}

// Error показывает страницу с ошибкой без редиректа.
func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	v.Render(w, r, status, "error", Page{Title: http.StatusText(status), Error: msg, Data: msg})
}

// Loading — нейтральная страница, пока сессия ещё не восстановлена.
// Браузер повторяет запрос сам.
func (v *Renderer) Loading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	if WantsJSON(r) {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("session is loading"))
		return
	}
	v.Render(w, r, http.StatusServiceUnavailable, "loading", Page{Title: "Loading"})
}
