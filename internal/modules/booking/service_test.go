package booking

import (
	"context"
	"testing"
	"time"

	"petmarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) UpdateDetailsIfPending(ctx context.Context, id int64, bookingTime time.Time, notes string) (bool, error) {
	args := m.Called(ctx, id, bookingTime, notes)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockServiceReader struct {
	mock.Mock
}

func (m *mockServiceReader) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockPetReader struct {
	mock.Mock
}

func (m *mockPetReader) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBookingCreated(ctx context.Context, providerID, bookingID int64) error {
	args := m.Called(ctx, providerID, bookingID)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBookingStatusChanged(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, userID, bookingID, status)
	return args.Error(0)
}

const (
	ownerID    = int64(10)
	providerID = int64(20)
)

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		OwnerID:    ownerID,
		ProviderID: providerID,
		ServiceID:  5,
		PetID:      7,
		Status:     domain.BookingPending,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(48 * time.Hour)

	activeService := &domain.Service{ID: 5, ProviderID: providerID, PriceCents: 1500, Active: true}
	ownedPet := &domain.Pet{ID: 7, OwnerID: ownerID}

	t.Run("creates pending booking with copied provider and price", func(t *testing.T) {
		repo := new(mockBookingRepo)
		services := new(mockServiceReader)
		pets := new(mockPetReader)
		notifs := new(mockNotifier)

		services.On("GetByID", ctx, int64(5)).Return(activeService, nil)
		pets.On("GetByID", ctx, int64(7)).Return(ownedPet, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		notifs.On("NotifyBookingCreated", ctx, providerID, int64(1)).Return(nil)

		svc := NewService(repo, services, pets, notifs)
		b, err := svc.CreateBooking(ctx, ownerID, CreateBookingRequest{
			ServiceID:   5,
			PetID:       7,
			BookingTime: future,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingPending, b.Status)
		assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
		assert.Equal(t, providerID, b.ProviderID)
		assert.Equal(t, int64(1500), b.AmountCents)
		notifs.AssertExpectations(t)
	})

	t.Run("rejects past booking time", func(t *testing.T) {
		svc := NewService(new(mockBookingRepo), new(mockServiceReader), new(mockPetReader), nil)
		_, err := svc.CreateBooking(ctx, ownerID, CreateBookingRequest{
			ServiceID:   5,
			PetID:       7,
			BookingTime: time.Now().Add(-time.Hour),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects inactive service", func(t *testing.T) {
		services := new(mockServiceReader)
		services.On("GetByID", ctx, int64(5)).Return(&domain.Service{ID: 5, Active: false}, nil)

		svc := NewService(new(mockBookingRepo), services, new(mockPetReader), nil)
		_, err := svc.CreateBooking(ctx, ownerID, CreateBookingRequest{
			ServiceID:   5,
			PetID:       7,
			BookingTime: future,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects someone else's pet", func(t *testing.T) {
		services := new(mockServiceReader)
		pets := new(mockPetReader)
		services.On("GetByID", ctx, int64(5)).Return(activeService, nil)
		pets.On("GetByID", ctx, int64(7)).Return(&domain.Pet{ID: 7, OwnerID: 999}, nil)

		svc := NewService(new(mockBookingRepo), services, pets, nil)
		_, err := svc.CreateBooking(ctx, ownerID, CreateBookingRequest{
			ServiceID:   5,
			PetID:       7,
			BookingTime: future,
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing service maps to not found", func(t *testing.T) {
		services := new(mockServiceReader)
		services.On("GetByID", ctx, int64(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(new(mockBookingRepo), services, new(mockPetReader), nil)
		_, err := svc.CreateBooking(ctx, ownerID, CreateBookingRequest{
			ServiceID:   5,
			PetID:       7,
			BookingTime: future,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRequestStatusChange(t *testing.T) {
	ctx := context.Background()

	t.Run("provider confirms pending and other party is notified", func(t *testing.T) {
		repo := new(mockBookingRepo)
		notifs := new(mockNotifier)

		confirmed := pendingBooking()
		confirmed.Status = domain.BookingConfirmed

		repo.On("GetByID", ctx, int64(1)).Return(pendingBooking(), nil).Once()
		repo.On("UpdateStatusIfCurrent", ctx, int64(1), domain.BookingPending, domain.BookingConfirmed).Return(true, nil)
		repo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()
		notifs.On("NotifyBookingStatusChanged", ctx, ownerID, int64(1), domain.BookingConfirmed).Return(nil)

		svc := NewService(repo, nil, nil, notifs)
		b, err := svc.RequestStatusChange(ctx, 1, Actor{ID: providerID, Role: domain.RoleProvider}, domain.BookingConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, b.Status)
		notifs.AssertExpectations(t)
	})

	t.Run("owner confirming is unauthorized, not invalid", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", ctx, int64(1)).Return(pendingBooking(), nil)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.RequestStatusChange(ctx, 1, Actor{ID: ownerID, Role: domain.RolePetOwner}, domain.BookingConfirmed)

		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "UpdateStatusIfCurrent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.RequestStatusChange(ctx, 404, Actor{ID: providerID, Role: domain.RoleProvider}, domain.BookingConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lost race surfaces as invalid transition", func(t *testing.T) {
		// The snapshot says pending, but another request lands first and
		// the conditional write misses.
		repo := new(mockBookingRepo)
		repo.On("GetByID", ctx, int64(1)).Return(pendingBooking(), nil)
		repo.On("UpdateStatusIfCurrent", ctx, int64(1), domain.BookingPending, domain.BookingConfirmed).Return(false, nil)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.RequestStatusChange(ctx, 1, Actor{ID: providerID, Role: domain.RoleProvider}, domain.BookingConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestUpdateDetails(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(72 * time.Hour)

	t.Run("only the owner may edit", func(t *testing.T) {
		repo := new(mockBookingRepo)
		repo.On("GetByID", ctx, int64(1)).Return(pendingBooking(), nil)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.UpdateDetails(ctx, 1, providerID, UpdateBookingRequest{BookingTime: future})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("editing a non-pending booking fails", func(t *testing.T) {
		repo := new(mockBookingRepo)
		confirmed := pendingBooking()
		confirmed.Status = domain.BookingConfirmed
		repo.On("GetByID", ctx, int64(1)).Return(confirmed, nil)
		repo.On("UpdateDetailsIfPending", ctx, int64(1), mock.AnythingOfType("time.Time"), "").Return(false, nil)

		svc := NewService(repo, nil, nil, nil)
		_, err := svc.UpdateDetails(ctx, 1, ownerID, UpdateBookingRequest{BookingTime: future})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestGetForActor(t *testing.T) {
	ctx := context.Background()

	repo := new(mockBookingRepo)
	repo.On("GetByID", ctx, int64(1)).Return(pendingBooking(), nil)
	svc := NewService(repo, nil, nil, nil)

	t.Run("owner sees own booking", func(t *testing.T) {
		b, err := svc.GetForActor(ctx, 1, Actor{ID: ownerID, Role: domain.RolePetOwner})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		_, err := svc.GetForActor(ctx, 1, Actor{ID: 999, Role: domain.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetForActor(ctx, 1, Actor{ID: 999, Role: domain.RolePetOwner})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
