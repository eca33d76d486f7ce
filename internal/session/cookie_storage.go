package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const tokenKey = "token"

// CookieStorage хранит токен в подписанной (и, если задан ключ, зашифрованной) cookie.
type CookieStorage struct {
	store sessions.Store
	name  string
}

// NewCookieStorage создаёт хранилище поверх gorilla/sessions.
func NewCookieStorage(store sessions.Store, name string) *CookieStorage {
	return &CookieStorage{store: store, name: name}
}

// Load возвращает токен из cookie. Подделанная cookie считается ошибкой.
func (c *CookieStorage) Load(r *http.Request) (string, error) {
	const op = "session.CookieStorage.Load"
	sess, err := c.store.Get(r, c.name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, _ := sess.Values[tokenKey].(string)
	return token, nil
}

// Save записывает токен в cookie.
func (c *CookieStorage) Save(w http.ResponseWriter, r *http.Request, token string) error {
	const op = "session.CookieStorage.Save"
	sess, _ := c.store.Get(r, c.name)
	sess.Values[tokenKey] = token
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет cookie. Закэшированная в запросе сессия сохраняет свои
// параметры, так что последующий Save в том же запросе снова выставит cookie.
func (c *CookieStorage) Clear(w http.ResponseWriter, r *http.Request) error {
	const op = "session.CookieStorage.Clear"
	sess, _ := c.store.Get(r, c.name)
	delete(sess.Values, tokenKey)

	expired := sessions.NewSession(c.store, c.name)
	if sess.Options != nil {
		o := *sess.Options
		expired.Options = &o
	} else {
		expired.Options = &sessions.Options{Path: "/"}
	}
	expired.Options.MaxAge = -1
	if err := expired.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
