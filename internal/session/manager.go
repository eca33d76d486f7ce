package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// Manager открывает Store для каждого запроса.
type Manager struct {
	storage   TokenStorage
	flashes   sessions.Store
	flashName string
	log       *slog.Logger
}

// NewManager создаёт Manager. flashes хранит одноразовые уведомления.
func NewManager(log *slog.Logger, storage TokenStorage, flashes sessions.Store, cookieName string) *Manager {
	return &Manager{
		storage:   storage,
		flashes:   flashes,
		flashName: cookieName + "_flash",
		log:       log,
	}
}

// Open создаёт неинициализированный Store для запроса.
func (m *Manager) Open(w http.ResponseWriter, r *http.Request) *Store {
	return newStore(w, r, m.storage, m.flashes, m.flashName, m.log)
}

// Middleware открывает и инициализирует Store и кладёт его в контекст запроса.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.Open(w, r)
		r = r.WithContext(WithStore(r.Context(), st))
		st.r = r
		st.Initialize()
		next.ServeHTTP(w, r)
	})
}

// CookieOptions — общие параметры cookie сессии и уведомлений.
func CookieOptions(maxAge time.Duration, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewCookieStore создаёт gorilla CookieStore с заданными ключами.
func NewCookieStore(opts *sessions.Options, hashKey, blockKey []byte) *sessions.CookieStore {
	var store *sessions.CookieStore
	if len(blockKey) > 0 {
		store = sessions.NewCookieStore(hashKey, blockKey)
	} else {
		store = sessions.NewCookieStore(hashKey)
	}
	o := *opts
	store.Options = &o
	store.MaxAge(o.MaxAge)
	return store
}
