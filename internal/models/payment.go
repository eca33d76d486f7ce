package models

// Payment — запись о платеже за бронирование.
type Payment struct {
	OrderID     string    `json:"orderId"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	BookingID   int64     `json:"bookingId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	PaymentTime Timestamp `json:"paymentTime"`
}

// PaymentOrder — заказ, созданный сервером для платёжного виджета.
type PaymentOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
}

// PaymentConfirmation — подписанные поля, которые виджет возвращает после оплаты.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
