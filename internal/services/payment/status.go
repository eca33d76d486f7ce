package payment

import "github.com/magabrotheeeer/rentify-web/internal/models"

// Status — нормализованный статус платежа.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

// NormalizeStatus: "PAID" и "SUCCESS" означают завершённый платёж, всё остальное считается ожидающим.
func NormalizeStatus(s string) Status {
	switch s {
	case "PAID", "SUCCESS":
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Label — отображаемое название статуса.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// MarshalText отдаёт статус в JSON как название.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}

// Stats — сводка по платежам.
type Stats struct {
	Revenue float64 `json:"revenue"`
	Paid    int     `json:"paid"`
	Pending int     `json:"pending"`
}

// Summarize считает сумму всех платежей и число оплаченных и ожидающих.
func Summarize(payments []models.Payment) Stats {
	var st Stats
	for _, p := range payments {
		st.Revenue += p.Amount
		if NormalizeStatus(p.Status) == StatusCompleted {
			st.Paid++
		}
	}
	st.Pending = len(payments) - st.Paid
	return st
}
