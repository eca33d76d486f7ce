// Package session хранит токен доступа браузера и выводит из него текущую сессию.
//
// Store живёт в пределах одного HTTP-запроса: Initialize читает сохранённый
// токен, Login и Logout единственные, кто его меняет. Сетевых вызовов к API
// здесь нет, только чтение и запись носителя токена (cookie или redis).
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"

	"github.com/magabrotheeeer/rentify-web/internal/lib/jwt"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// Session — данные вошедшего пользователя, полученные из токена.
// Role всегда одна из известных ролей.
type Session struct {
	Subject  string
	Name     string
	UserID   int64
	Role     models.Role
	RawToken string
}

// IsAdmin сообщает, что сессия принадлежит администратору.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// TokenStorage — носитель токена между запросами.
type TokenStorage interface {
	Load(r *http.Request) (string, error)
	Save(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Store — состояние сессии одного запроса.
type Store struct {
	mu        sync.Mutex
	storage   TokenStorage
	flashes   sessions.Store
	flashName string
	w         http.ResponseWriter
	r         *http.Request
	log       *slog.Logger

	session *Session
	loading bool
}

func newStore(w http.ResponseWriter, r *http.Request, storage TokenStorage, flashes sessions.Store, flashName string, log *slog.Logger) *Store {
	return &Store{
		storage:   storage,
		flashes:   flashes,
		flashName: flashName,
		w:         w,
		r:         r,
		log:       log,
		loading:   true,
	}
}

// Initialize читает сохранённый токен и выводит из него сессию.
// Недекодируемый токен стирается. Повторный вызов ничего не делает.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loading {
		return
	}
	defer func() { s.loading = false }()

	token, err := s.storage.Load(s.r)
	if err != nil {
		s.log.Warn("failed to load session token", sl.Err(err))
		s.clearLocked()
		return
	}
	if token == "" {
		s.session = nil
		return
	}
	if err := s.deriveLocked(token); err != nil {
		s.log.Info("dropping undecodable session token", sl.Err(err))
		s.clearLocked()
	}
}

// Login выводит сессию тем же путём, что и Initialize, и только затем сохраняет токен.
// Недекодируемый токен не сохраняется.
func (s *Store) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err := s.deriveLocked(token); err != nil {
		s.clearLocked()
		return err
	}
	if err := s.storage.Save(s.w, s.r, token); err != nil {
		s.session = nil
		return err
	}
	return nil
}

// Logout очищает сессию и стирает токен.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Current возвращает сессию или nil.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Loading сообщает, что Initialize ещё не вызывался.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) deriveLocked(token string) error {
	d, err := jwt.Decode(token)
	if err != nil {
		return err
	}
	s.session = &Session{
		Subject:  d.Subject,
		Name:     d.Name,
		UserID:   d.UserID,
		Role:     d.Role,
		RawToken: token,
	}
	return nil
}

func (s *Store) clearLocked() {
	s.session = nil
	if err := s.storage.Clear(s.w, s.r); err != nil {
		s.log.Warn("failed to clear session token", sl.Err(err))
	}
}

type ctxKey struct{}

// WithStore кладёт Store в контекст.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт Store из контекста.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	return s, ok && s != nil
}

// Current возвращает сессию из контекста запроса или nil.
func Current(ctx context.Context) *Session {
	if s, ok := FromContext(ctx); ok {
		return s.Current()
	}
	return nil
}

// Tokens отдаёт apiclient токен сессии текущего запроса.
type Tokens struct{}

// Token реализует apiclient.TokenSource.
func (Tokens) Token(ctx context.Context) (string, bool) {
	sess := Current(ctx)
	if sess == nil {
		return "", false
	}
	return sess.RawToken, true
}

// Expire завершает сессию после 401 от API.
func (Tokens) Expire(ctx context.Context) {
	if s, ok := FromContext(ctx); ok {
		s.Logout()
	}
}
