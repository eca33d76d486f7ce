// Package validation описывает ошибки проверки пользовательского ввода, которые
// показываются рядом с полем формы, а не как сбой запроса.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Error — нарушение правил ввода с готовым для пользователя текстом.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New создаёт ошибку валидации для поля.
func New(field, msg string) error {
	return &Error{Field: field, Message: msg}
}

// Message возвращает текст ошибки валидации, если err является ею.
func Message(err error) (string, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}

var validate = validator.New()

// Struct проверяет теги validate и превращает нарушения в *Error.
// Field — первое поле с нарушением.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &Error{Field: verrs[0].Field(), Message: Describe(verrs)}
	}
	return err
}

// Describe склеивает нарушения в одну строку через запятую.
func Describe(errs validator.ValidationErrors) string {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt", "gte", "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "lte", "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
