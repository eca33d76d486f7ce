// Package admin реализует back-office: пользователи, автомобили, бронирования и платежи.
//
// Деструктивные операции принимают флаг confirmed: без подтверждения запрос
// к API не отправляется. После успешного изменения данные не правятся на месте,
// а перечитываются с сервера при следующем показе списка.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// ErrNotConfirmed — деструктивное действие не подтверждено, запрос не отправлялся.
var ErrNotConfirmed = errors.New("action not confirmed")

// ErrUserNotFound возвращается, если пользователя нет в списке.
var ErrUserNotFound = errors.New("user not found")

// Общие тексты ошибок, если сервер не прислал своего сообщения.
const (
	DeleteUserFailed  = "Failed to delete user. Please try again."
	ChangeRoleFailed  = "Failed to update user role. Please try again."
	UpdateUserFailed  = "Failed to update user. Please try again."
	DeleteCarFailed   = "Failed to delete car."
	SaveCarFailed     = "Failed to save car."
	CancelFailed      = "Failed to cancel booking."
	LoadFailedMessage = "Failed to load data. Please try again."
)

// Вопросы для страницы подтверждения.
const (
	ConfirmDeleteUser    = "Are you sure you want to delete this user?"
	ConfirmDeleteCar     = "Are you sure you want to delete this car?"
	ConfirmCancelBooking = "Are you sure you want to cancel this booking?"
)

// API — методы удалённого API, доступные администратору.
type API interface {
	Me(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role models.Role) error
	DeleteUser(ctx context.Context, id int64) error

	ListCars(ctx context.Context) ([]models.Car, error)
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	CreateCar(ctx context.Context, in models.CarInput, img *models.Image) (*models.Car, error)
	UpdateCar(ctx context.Context, id int64, in models.CarInput, img *models.Image) (*models.Car, error)
	DeleteCar(ctx context.Context, id int64) error

	AllBookings(ctx context.Context) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id int64) error

	AllPayments(ctx context.Context) ([]models.Payment, error)
}

type Service struct {
	log   *slog.Logger
	api   API
	audit audit.Publisher
}

func New(log *slog.Logger, api API, publisher audit.Publisher) *Service {
	return &Service{log: log, api: api, audit: publisher}
}

// FailureNotice — сообщение сервера, иначе fallback.
func FailureNotice(err error, fallback string) string {
	return apiclient.MessageOf(err, fallback)
}

// publish отправляет событие аудита. Сбой брокера только логируется.
func (s *Service) publish(ctx context.Context, action audit.Action, actor string, target int64, details any) {
	err := s.audit.Publish(ctx, audit.Event{
		Action:   action,
		Actor:    actor,
		TargetID: strconv.FormatInt(target, 10),
		Details:  details,
	})
	if err != nil {
		s.log.Error("failed to publish audit event",
			slog.String("action", string(action)),
			sl.Err(err),
		)
	}
}
