package view

import (
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/catalog"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

// LoginForm — введённые значения формы входа. Пароль обратно не отдаётся.
type LoginForm struct {
	Email string `json:"email"`
}

// CarsData — каталог с фильтром.
type CarsData struct {
	Filter    models.CarFilter `json:"filter"`
	Cars      []models.Car     `json:"cars"`
	LoadError string           `json:"loadError,omitempty"`
}

// CarDetailData — карточка автомобиля и значения формы бронирования.
type CarDetailData struct {
	Detail    *catalog.Detail `json:"detail"`
	StartDate string          `json:"startDate,omitempty"`
	EndDate   string          `json:"endDate,omitempty"`
}

// CheckoutData — описание для платёжного виджета и сумма для показа.
type CheckoutData struct {
	Checkout *payment.Checkout `json:"checkout"`
	Display  float64           `json:"display"`
}

// ConfirmData — вопрос перед деструктивным действием.
type ConfirmData struct {
	Question string `json:"question"`
	Action   string `json:"action"`
	Back     string `json:"back"`
}

// CarFormData — форма создания или изменения автомобиля. ID == 0 — новый.
type CarFormData struct {
	ID       int64           `json:"id,omitempty"`
	Input    models.CarInput `json:"input"`
	ImageURL string          `json:"imageUrl,omitempty"`
}
