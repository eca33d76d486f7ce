package models

// Review — отзыв клиента об автомобиле.
type Review struct {
	ID        int64     `json:"id"`
	CarID     int64     `json:"carId"`
	UserID    int64     `json:"userId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username"`
	CreatedAt Timestamp `json:"createdAt"`
}

// ReviewRequest — тело запроса на создание отзыва.
type ReviewRequest struct {
	CarID   int64  `json:"carId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
