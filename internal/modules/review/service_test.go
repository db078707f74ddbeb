package review

import (
	"context"
	"errors"
	"testing"

	"petmarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if args.Error(0) == nil {
		rv.ID = 1
	}
	return args.Error(0)
}

func (m *mockReviewRepo) FindByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, providerID, limit, offset)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) ReviewCreated(ctx context.Context, serviceID, providerID int64) {
	m.Called(ctx, serviceID, providerID)
}

type mockReviewNotifier struct {
	mock.Mock
}

func (m *mockReviewNotifier) NotifyReviewReceived(ctx context.Context, providerID, bookingID int64, rating int) error {
	args := m.Called(ctx, providerID, bookingID, rating)
	return args.Error(0)
}

const (
	ownerID    = int64(10)
	providerID = int64(20)
)

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		OwnerID:    ownerID,
		ProviderID: providerID,
		ServiceID:  5,
		Status:     domain.BookingCompleted,
	}
}

func TestCanReview(t *testing.T) {
	ctx := context.Background()

	t.Run("completed unreviewed booking of the actor", func(t *testing.T) {
		bookings := new(mockBookingReader)
		reviews := new(mockReviewRepo)
		bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)
		reviews.On("ExistsForBooking", ctx, int64(1)).Return(false, nil)

		svc := NewService(reviews, bookings, nil, nil)
		assert.True(t, svc.CanReview(ctx, 1, ownerID))
	})

	t.Run("false for every gate failure", func(t *testing.T) {
		cases := []struct {
			name    string
			booking *domain.Booking
			getErr  error
			exists  bool
			actor   int64
		}{
			{"missing booking", nil, gorm.ErrRecordNotFound, false, ownerID},
			{"not the owner", completedBooking(), nil, false, int64(99)},
			{"provider asking", completedBooking(), nil, false, providerID},
			{"already reviewed", completedBooking(), nil, true, ownerID},
			{"not completed", &domain.Booking{ID: 1, OwnerID: ownerID, Status: domain.BookingConfirmed}, nil, false, ownerID},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				bookings := new(mockBookingReader)
				reviews := new(mockReviewRepo)
				if c.getErr != nil {
					bookings.On("GetByID", ctx, int64(1)).Return(nil, c.getErr)
				} else {
					bookings.On("GetByID", ctx, int64(1)).Return(c.booking, nil)
				}
				reviews.On("ExistsForBooking", ctx, int64(1)).Return(c.exists, nil).Maybe()

				svc := NewService(reviews, bookings, nil, nil)
				assert.False(t, svc.CanReview(ctx, 1, c.actor))
			})
		}
	})
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path feeds the aggregator and notifies", func(t *testing.T) {
		bookings := new(mockBookingReader)
		reviews := new(mockReviewRepo)
		agg := new(mockAggregator)
		notifs := new(mockReviewNotifier)

		bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)
		reviews.On("ExistsForBooking", ctx, int64(1)).Return(false, nil)
		reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
		agg.On("ReviewCreated", ctx, int64(5), providerID).Return()
		notifs.On("NotifyReviewReceived", ctx, providerID, int64(1), 4).Return(nil)

		svc := NewService(reviews, bookings, agg, notifs)
		rv, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 4, Comment: "  great walk  "})

		assert.NoError(t, err)
		assert.Equal(t, 4, rv.Rating)
		assert.Equal(t, "great walk", rv.Comment)
		assert.Equal(t, providerID, rv.ProviderID)
		agg.AssertExpectations(t)
		notifs.AssertExpectations(t)
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc := NewService(new(mockReviewRepo), new(mockBookingReader), nil, nil)
		for _, r := range []int{0, -1, 6, 100} {
			_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: r})
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", r)
		}
	})

	t.Run("not eligible cases", func(t *testing.T) {
		t.Run("missing booking", func(t *testing.T) {
			bookings := new(mockBookingReader)
			bookings.On("GetByID", ctx, int64(1)).Return(nil, gorm.ErrRecordNotFound)

			svc := NewService(new(mockReviewRepo), bookings, nil, nil)
			_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 5})
			assert.ErrorIs(t, err, ErrNotEligible)
		})

		t.Run("booking not completed", func(t *testing.T) {
			bookings := new(mockBookingReader)
			b := completedBooking()
			b.Status = domain.BookingConfirmed
			bookings.On("GetByID", ctx, int64(1)).Return(b, nil)

			svc := NewService(new(mockReviewRepo), bookings, nil, nil)
			_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 5})
			assert.ErrorIs(t, err, ErrNotEligible)
		})

		t.Run("not the booking owner", func(t *testing.T) {
			bookings := new(mockBookingReader)
			bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)

			svc := NewService(new(mockReviewRepo), bookings, nil, nil)
			_, err := svc.Create(ctx, 1, providerID, CreateReviewRequest{Rating: 5})
			assert.ErrorIs(t, err, ErrNotEligible)
		})

		t.Run("already reviewed", func(t *testing.T) {
			bookings := new(mockBookingReader)
			reviews := new(mockReviewRepo)
			bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)
			reviews.On("ExistsForBooking", ctx, int64(1)).Return(true, nil)

			svc := NewService(reviews, bookings, nil, nil)
			_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 5})
			assert.ErrorIs(t, err, ErrNotEligible)
		})
	})

	t.Run("lost insert race maps unique violation to not eligible", func(t *testing.T) {
		bookings := new(mockBookingReader)
		reviews := new(mockReviewRepo)
		bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)
		reviews.On("ExistsForBooking", ctx, int64(1)).Return(false, nil)
		reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).
			Return(errors.New("UNIQUE constraint failed: reviews.booking_id"))

		svc := NewService(reviews, bookings, nil, nil)
		_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, ErrNotEligible)
	})

	t.Run("other insert errors pass through", func(t *testing.T) {
		bookings := new(mockBookingReader)
		reviews := new(mockReviewRepo)
		bookings.On("GetByID", ctx, int64(1)).Return(completedBooking(), nil)
		reviews.On("ExistsForBooking", ctx, int64(1)).Return(false, nil)
		dbDown := errors.New("connection refused")
		reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(dbDown)

		svc := NewService(reviews, bookings, nil, nil)
		_, err := svc.Create(ctx, 1, ownerID, CreateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, dbDown)
	})
}
