package review

import (
	"context"

	"petmarket/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	FindByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Review, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// RatingAggregator is told about new reviews after they land. Failures are
// the aggregator's problem: review creation never rolls back on its account.
type RatingAggregator interface {
	ReviewCreated(ctx context.Context, serviceID, providerID int64)
}

type NotificationSender interface {
	NotifyReviewReceived(ctx context.Context, providerID, bookingID int64, rating int) error
}
