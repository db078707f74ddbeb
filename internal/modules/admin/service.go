package admin

import (
	"context"
	"errors"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users    UserRepository
	bookings BookingReader
}

func NewService(users UserRepository, bookings BookingReader) *Service {
	return &Service{users: users, bookings: bookings}
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	if err := s.users.SetBlocked(ctx, userID, blocked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.bookings.ListAll(ctx, limit, offset)
}
