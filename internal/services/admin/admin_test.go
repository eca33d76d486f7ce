package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]models.User)
	return u, args.Error(1)
}

func (m *MockAPI) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockAPI) UpdateUserRole(ctx context.Context, id int64, role models.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockAPI) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListCars(ctx context.Context) ([]models.Car, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Car)
	return c, args.Error(1)
}

func (m *MockAPI) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Car)
	return c, args.Error(1)
}

func (m *MockAPI) CreateCar(ctx context.Context, in models.CarInput, img *models.Image) (*models.Car, error) {
	args := m.Called(ctx, in, img)
	c, _ := args.Get(0).(*models.Car)
	return c, args.Error(1)
}

func (m *MockAPI) UpdateCar(ctx context.Context, id int64, in models.CarInput, img *models.Image) (*models.Car, error) {
	args := m.Called(ctx, id, in, img)
	c, _ := args.Get(0).(*models.Car)
	return c, args.Error(1)
}

func (m *MockAPI) DeleteCar(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) AllBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]models.Booking)
	return b, args.Error(1)
}

func (m *MockAPI) CancelBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) AllPayments(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]models.Payment)
	return p, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e audit.Event) error {
	return m.Called(ctx, e).Error(0)
}

func action(a audit.Action) any {
	return mock.MatchedBy(func(e audit.Event) bool { return e.Action == a })
}

func TestOverview(t *testing.T) {
	api := new(MockAPI)
	api.On("ListUsers", mock.Anything).Return([]models.User{{ID: 1}, {ID: 2}}, nil)
	api.On("ListCars", mock.Anything).Return([]models.Car{{ID: 1}}, nil)
	api.On("AllBookings", mock.Anything).Return([]models.Booking{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	api.On("AllPayments", mock.Anything).Return([]models.Payment{{Amount: 100}, {Amount: 250.5}}, nil)
	api.On("Me", mock.Anything).Return(nil, errors.New("boom"))

	ov, err := New(sl.Discard(), api, audit.Nop{}).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Overview{Users: 2, Cars: 1, Bookings: 3, Revenue: 350.5}, ov)
}

func TestOverview_Failure(t *testing.T) {
	api := new(MockAPI)
	api.On("ListUsers", mock.Anything).Return(nil, &apiclient.APIError{Status: 500})
	api.On("ListCars", mock.Anything).Return([]models.Car{}, nil).Maybe()
	api.On("AllBookings", mock.Anything).Return([]models.Booking{}, nil).Maybe()
	api.On("AllPayments", mock.Anything).Return([]models.Payment{}, nil).Maybe()
	api.On("Me", mock.Anything).Return(&models.User{}, nil).Maybe()

	_, err := New(sl.Discard(), api, audit.Nop{}).Overview(context.Background())
	require.Error(t, err)
}

func TestDestructive_NotConfirmed(t *testing.T) {
	api := new(MockAPI)
	pub := new(MockPublisher)
	s := New(sl.Discard(), api, pub)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteUser(ctx, "admin@example.com", 1, false), ErrNotConfirmed)
	assert.ErrorIs(t, s.DeleteCar(ctx, "admin@example.com", 1, false), ErrNotConfirmed)
	assert.ErrorIs(t, s.CancelBooking(ctx, "admin@example.com", 1, false), ErrNotConfirmed)

	api.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "DeleteCar", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancelBooking_StatsFromRefetch(t *testing.T) {
	api := new(MockAPI)
	api.On("AllBookings", mock.Anything).Return([]models.Booking{
		{ID: 1, Status: models.BookingBooked},
		{ID: 2, Status: models.BookingPaid},
	}, nil).Once()
	api.On("CancelBooking", mock.Anything, int64(1)).Return(nil).Once()
	api.On("AllBookings", mock.Anything).Return([]models.Booking{
		{ID: 1, Status: models.BookingCancelled},
		{ID: 2, Status: models.BookingPaid},
	}, nil).Once()
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, action(audit.BookingCancelled)).Return(nil).Once()

	s := New(sl.Discard(), api, pub)
	ctx := context.Background()

	before, err := s.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, BookingStats{Total: 2, Active: 1, Paid: 1}, before.Stats)

	require.NoError(t, s.CancelBooking(ctx, "admin@example.com", 1, true))

	after, err := s.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, BookingStats{Total: 2, Paid: 1, Cancelled: 1}, after.Stats)

	api.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCancelBooking_Failure(t *testing.T) {
	api := new(MockAPI)
	api.On("CancelBooking", mock.Anything, int64(1)).Return(&apiclient.APIError{Status: 400, Message: "Booking already paid"})
	pub := new(MockPublisher)

	err := New(sl.Discard(), api, pub).CancelBooking(context.Background(), "", 1, true)
	require.Error(t, err)
	assert.Equal(t, "Booking already paid", FailureNotice(err, CancelFailed))
	assert.Equal(t, CancelFailed, FailureNotice(errors.New("timeout"), CancelFailed))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeleteUser_AuditFailureIgnored(t *testing.T) {
	api := new(MockAPI)
	api.On("DeleteUser", mock.Anything, int64(5)).Return(nil).Once()
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, action(audit.UserDeleted)).Return(errors.New("broker down")).Once()

	require.NoError(t, New(sl.Discard(), api, pub).DeleteUser(context.Background(), "admin@example.com", 5, true))
	pub.AssertExpectations(t)
}

func TestChangeRole(t *testing.T) {
	api := new(MockAPI)
	api.On("UpdateUserRole", mock.Anything, int64(3), models.RoleAdmin).Return(nil).Once()
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Action == audit.UserRoleChanged && e.TargetID == "3" && e.Actor == "root@example.com"
	})).Return(nil).Once()

	s := New(sl.Discard(), api, pub)
	require.NoError(t, s.ChangeRole(context.Background(), "root@example.com", 3, models.RoleAdmin))

	err := s.ChangeRole(context.Background(), "root@example.com", 3, models.Role(0))
	_, ok := validation.Message(err)
	assert.True(t, ok)

	api.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUser(t *testing.T) {
	api := new(MockAPI)
	api.On("ListUsers", mock.Anything).Return([]models.User{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil)
	s := New(sl.Discard(), api, audit.Nop{})

	u, err := s.User(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "B", u.Name)

	_, err = s.User(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveCar(t *testing.T) {
	in := models.CarInput{Brand: " Tata ", Model: "Nexon", Type: "SUV", PricePerDay: 2500}
	clean := models.CarInput{Brand: "Tata", Model: "Nexon", Type: "SUV", PricePerDay: 2500}
	img := &models.Image{Filename: "nexon.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}

	t.Run("create", func(t *testing.T) {
		api := new(MockAPI)
		api.On("CreateCar", mock.Anything, clean, img).Return(&models.Car{ID: 10}, nil).Once()
		car, err := New(sl.Discard(), api, audit.Nop{}).SaveCar(context.Background(), "", 0, in, img)
		require.NoError(t, err)
		assert.Equal(t, int64(10), car.ID)
	})

	t.Run("update drops empty image", func(t *testing.T) {
		api := new(MockAPI)
		api.On("UpdateCar", mock.Anything, int64(4), clean, (*models.Image)(nil)).Return(&models.Car{ID: 4}, nil).Once()
		_, err := New(sl.Discard(), api, audit.Nop{}).SaveCar(context.Background(), "", 4, in, &models.Image{Filename: "x"})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("invalid", func(t *testing.T) {
		api := new(MockAPI)
		_, err := New(sl.Discard(), api, audit.Nop{}).SaveCar(context.Background(), "", 0, models.CarInput{Brand: "Tata"}, nil)
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		api.AssertNotCalled(t, "CreateCar", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPayments(t *testing.T) {
	api := new(MockAPI)
	api.On("AllPayments", mock.Anything).Return([]models.Payment{
		{OrderID: "o1", Amount: 100, Status: "PAID"},
		{OrderID: "o2", Amount: 40, Status: "CREATED"},
	}, nil)

	board, err := New(sl.Discard(), api, audit.Nop{}).Payments(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Payments, 2)
	assert.Equal(t, payment.StatusCompleted, board.Payments[0].State)
	assert.Equal(t, payment.StatusPending, board.Payments[1].State)
	assert.Equal(t, payment.Stats{Revenue: 140, Paid: 1, Pending: 1}, board.Stats)
}
