package models

// BookingStatus — состояние бронирования на стороне сервера.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingPaid      BookingStatus = "PAID"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking — бронирование автомобиля на период.
type Booking struct {
	ID          int64         `json:"id"`
	CarID       int64         `json:"carId"`
	UserID      int64         `json:"userId,omitempty"`
	CarBrand    string        `json:"carBrand,omitempty"`
	CarModel    string        `json:"carModel,omitempty"`
	UserName    string        `json:"userName,omitempty"`
	UserEmail   string        `json:"userEmail,omitempty"`
	StartDate   Date          `json:"startDate"`
	EndDate     Date          `json:"endDate"`
	Status      BookingStatus `json:"status"`
	TotalAmount *float64      `json:"totalAmount,omitempty"`
	PricePerDay *float64      `json:"pricePerDay,omitempty"`
	CreatedAt   Timestamp     `json:"createdAt"`
}

// Days возвращает число суток аренды.
func (b Booking) Days() int {
	return RentalDays(b.StartDate.Time, b.EndDate.Time)
}

// BookingRequest — тело запроса на создание бронирования.
type BookingRequest struct {
	CarID     int64  `json:"carId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
