package models

// Car — автомобиль из каталога.
type Car struct {
	ID          int64   `json:"id"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Type        string  `json:"type"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   bool    `json:"available"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// CarInput — JSON-часть multipart-запроса на создание или изменение автомобиля.
type CarInput struct {
	Brand       string  `json:"brand" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	PricePerDay float64 `json:"pricePerDay" validate:"required,gt=0"`
	Available   bool    `json:"available"`
	Description string  `json:"description"`
}

// Input возвращает редактируемые поля автомобиля.
func (c Car) Input() CarInput {
	return CarInput{
		Brand:       c.Brand,
		Model:       c.Model,
		Type:        c.Type,
		PricePerDay: c.PricePerDay,
		Available:   c.Available,
		Description: c.Description,
	}
}

// Image — файл изображения автомобиля для загрузки.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
