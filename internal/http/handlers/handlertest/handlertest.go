// Package handlertest содержит вспомогательные функции для тестов HTTP-обработчиков:
// настоящая сессия в cookie и настоящий Renderer.
package handlertest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rentify-web/internal/lib/jwt"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// UserID — id пользователя в выданных токенах.
const UserID = 42

var hashKey = []byte("0123456789abcdef0123456789abcdef")

// View создаёт Renderer со встроенными шаблонами.
func View(t *testing.T) *view.Renderer {
	t.Helper()
	v, err := view.New(sl.Discard(), view.Options{CheckoutScript: "https://checkout.example.com/v1/checkout.js"})
	require.NoError(t, err)
	return v
}

// Manager создаёт менеджер сессий на cookie.
func Manager() *session.Manager {
	opts := session.CookieOptions(time.Hour, false)
	storage := session.NewCookieStorage(session.NewCookieStore(opts, hashKey, nil), "rs")
	return session.NewManager(sl.Discard(), storage, session.NewCookieStore(opts, hashKey, nil), "rs")
}

// Token выдаёт токен для роли.
func Token(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Issue("ann@mail.com", "Ann", role, UserID, time.Hour, []byte("k"))
	require.NoError(t, err)
	return token
}

// Request собирает запрос; непустая role добавляет cookie вошедшего пользователя.
func Request(t *testing.T, m *session.Manager, method, target string, form url.Values, role string) *http.Request {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if role == "" {
		return req
	}

	token := Token(t, role)
	rec := httptest.NewRecorder()
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, _ := session.FromContext(r.Context())
		require.NoError(t, st.Login(token))
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	Carry(rec, req)
	return req
}

// Carry переносит cookie из ответа в запрос, последнее значение побеждает.
func Carry(rec *httptest.ResponseRecorder, req *http.Request) {
	last := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, seen := last[c.Name]; !seen {
			order = append(order, c.Name)
		}
		last[c.Name] = c
	}
	for _, name := range order {
		if c := last[name]; c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
}

// Serve прогоняет запрос через сессию и маршрутизатор с одним маршрутом pattern.
func Serve(m *session.Manager, method, pattern string, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Method(method, pattern, h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// Flashes возвращает уведомления, которые увидит следующий запрос после rec.
func Flashes(m *session.Manager, rec *httptest.ResponseRecorder) []session.Flash {
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	Carry(rec, next)

	var got []session.Flash
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if st, ok := session.FromContext(r.Context()); ok {
			got = st.PopFlashes()
		}
	})).ServeHTTP(httptest.NewRecorder(), next)
	return got
}

// Messages — только тексты уведомлений.
func Messages(fs []session.Flash) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Message)
	}
	return out
}
