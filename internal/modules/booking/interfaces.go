package booking

import (
	"context"
	"time"

	"petmarket/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next domain.BookingStatus) (bool, error)
	UpdateDetailsIfPending(ctx context.Context, id int64, bookingTime time.Time, notes string) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error)
}

type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type PetReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, providerID, bookingID int64) error
	NotifyBookingStatusChanged(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error
}
