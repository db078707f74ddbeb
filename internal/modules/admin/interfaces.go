package admin

import (
	"context"

	"petmarket/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type BookingReader interface {
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
}
