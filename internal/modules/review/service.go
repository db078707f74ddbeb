package review

import (
	"context"
	"errors"
	"strings"

	"petmarket/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	reviews    ReviewRepository
	bookings   BookingReader
	aggregator RatingAggregator
	notifs     NotificationSender
}

func NewService(reviews ReviewRepository, bookings BookingReader, aggregator RatingAggregator, notifs NotificationSender) *Service {
	return &Service{
		reviews:    reviews,
		bookings:   bookings,
		aggregator: aggregator,
		notifs:     notifs,
	}
}

// CanReview reports whether actorID may leave a review for the booking:
// the booking exists, belongs to the actor, is completed, and has no review
// yet. It is a pure predicate for the UI and never returns an error.
func (s *Service) CanReview(ctx context.Context, bookingID, actorID int64) bool {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil || b == nil {
		return false
	}
	if b.OwnerID != actorID || b.Status != domain.BookingCompleted {
		return false
	}
	exists, err := s.reviews.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return false
	}
	return !exists
}

// Create inserts the single review a completed booking admits. The unique
// index on booking_id backs up the eligibility check, so two racing
// submissions cannot both land.
func (s *Service) Create(ctx context.Context, bookingID, actorID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEligible
		}
		return nil, err
	}
	if b.OwnerID != actorID || b.Status != domain.BookingCompleted {
		return nil, ErrNotEligible
	}
	exists, err := s.reviews.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNotEligible
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		OwnerID:    b.OwnerID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNotEligible
		}
		return nil, err
	}

	if s.aggregator != nil {
		s.aggregator.ReviewCreated(ctx, rv.ServiceID, rv.ProviderID)
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyReviewReceived(ctx, rv.ProviderID, rv.BookingID, rv.Rating)
	}
	return rv, nil
}

func (s *Service) GetByBooking(ctx context.Context, bookingID int64) (*domain.Review, error) {
	rv, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, error) {
	return s.reviews.ListByService(ctx, serviceID, limit, offset)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "23505")
}
