// Package audit публикует события об изменениях, сделанных через back-office,
// и о подтверждённых платежах. События уходят в RabbitMQ; если брокер не
// настроен, используется Nop.
package audit

import (
	"context"
	"time"
)

// Action — тип события аудита.
type Action string

const (
	UserRoleChanged  Action = "user.role_changed"
	UserUpdated      Action = "user.updated"
	UserDeleted      Action = "user.deleted"
	CarSaved         Action = "car.saved"
	CarDeleted       Action = "car.deleted"
	BookingCancelled Action = "booking.cancelled"
	PaymentVerified  Action = "payment.verified"
)

// Event — одно событие аудита.
type Event struct {
	Action   Action    `json:"action"`
	Actor    string    `json:"actor"`
	TargetID string    `json:"target_id"`
	Details  any       `json:"details,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher публикует события аудита.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop ничего не публикует.
type Nop struct{}

// Publish реализует Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }
