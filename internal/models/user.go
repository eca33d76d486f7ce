// Package models содержит доменные типы клиента проката автомобилей:
// автомобили, бронирования, отзывы, платежи и пользователей.
// Все сущности принадлежат удалённому API, здесь лишь их копии на время запроса.
package models

// User представляет учётную запись, как её возвращает API.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserUpdate — данные для изменения профиля.
type UserUpdate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Credentials — логин и пароль для входа.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
