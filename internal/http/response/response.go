// Package response содержит унифицированные JSON-ответы для клиентов,
// которые запрашивают страницы в формате application/json.
package response

// Response описывает стандартную структуру JSON-ответа.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// OK возвращает успешный Response с данными.
func OK(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}
