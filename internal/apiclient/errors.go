package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// GenericMessage — текст ошибки, когда сервер не прислал своего.
const GenericMessage = "request failed"

const maxPlainMessage = 300

// APIError — ответ API с кодом не из 2xx.
type APIError struct {
	Status int
	// Message — сообщение сервера: поле "message" JSON-тела или само тело, если это строка.
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = GenericMessage
	}
	return fmt.Sprintf("api status %d: %s", e.Status, msg)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: extractMessage(body)}
}

func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		if msg, ok := obj["message"].(string); ok {
			return strings.TrimSpace(msg)
		}
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}

	// Plain-text тело, но не HTML-страница ошибки прокси.
	if body[0] == '<' || !utf8.Valid(body) || len(body) > maxPlainMessage {
		return ""
	}
	return string(body)
}

// AsAPIError достаёт *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf возвращает сообщение сервера или fallback.
func MessageOf(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized сообщает, что API ответил 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound сообщает, что API ответил 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}
