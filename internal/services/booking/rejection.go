package booking

import (
	"strings"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
)

const (
	// FailedMessage — текст, когда сервер не объяснил отказ.
	FailedMessage = "Booking failed."
	// ConflictNotice — текст при пересечении дат с другим бронированием.
	ConflictNotice = "Car is not available for those dates. Please select different dates."
	// SuccessNotice — текст после успешного бронирования.
	SuccessNotice = "Booking successful! Proceed to your dashboard for payment."
)

// Rejection — отказ сервера в бронировании, переведённый для пользователя.
type Rejection struct {
	Message      string
	DateConflict bool
}

// Notice возвращает текст для пользователя.
func (r Rejection) Notice() string {
	if r.DateConflict {
		return ConflictNotice
	}
	return r.Message
}

// TranslateRejection — единственное место, где отказ распознаётся по тексту.
// Когда API начнёт отдавать код ошибки, поменять нужно только здесь.
func TranslateRejection(err error) Rejection {
	msg := apiclient.MessageOf(err, FailedMessage)
	return Rejection{
		Message:      msg,
		DateConflict: strings.Contains(strings.ToLower(msg), "not available"),
	}
}
