package booking

import (
	"context"
	"errors"
	"time"

	"petmarket/internal/domain"
	"petmarket/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	services ServiceReader
	pets     PetReader
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, services ServiceReader, pets PetReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		pets:     pets,
		notifs:   notifs,
	}
}

// CreateBooking opens a pending booking for the owner. Amount and provider
// are copied from the service row at creation and never change afterwards.
func (s *Service) CreateBooking(ctx context.Context, ownerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.BookingTime.After(time.Now()) {
		return nil, ErrValidation
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !svc.Active {
		return nil, ErrValidation
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	b := &domain.Booking{
		OwnerID:       ownerID,
		ServiceID:     svc.ID,
		ProviderID:    svc.ProviderID,
		PetID:         pet.ID,
		BookingTime:   req.BookingTime.UTC(),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		AmountCents:   svc.PriceCents,
		Notes:         req.Notes,
	}
	if errs := validator.Validate(b); errs != nil {
		return nil, ErrValidation
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.ProviderID, b.ID)
	}
	return b, nil
}

// RequestStatusChange validates the transition against a fresh snapshot and
// commits it with a conditional write. A concurrent transition that lands
// between the read and the write makes the conditional update miss, which
// surfaces as ErrInvalidTransition rather than silently overwriting.
func (s *Service) RequestStatusChange(ctx context.Context, bookingID int64, actor Actor, target domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := AuthorizeTransition(actor, b, target); err != nil {
		return nil, err
	}

	ok, err := s.bookings.UpdateStatusIfCurrent(ctx, bookingID, b.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		// Tell the other party.
		recipient := b.OwnerID
		if actor.Role == domain.RolePetOwner {
			recipient = b.ProviderID
		}
		_ = s.notifs.NotifyBookingStatusChanged(ctx, recipient, b.ID, b.Status)
	}
	return b, nil
}

// UpdateDetails edits booking_time/notes. Owner only, and only while the
// booking is still pending.
func (s *Service) UpdateDetails(ctx context.Context, bookingID, ownerID int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	if !req.BookingTime.After(time.Now()) {
		return nil, ErrValidation
	}

	ok, err := s.bookings.UpdateDetailsIfPending(ctx, bookingID, req.BookingTime.UTC(), req.Notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// GetForActor returns the booking only to one of its parties (or an admin).
func (s *Service) GetForActor(ctx context.Context, bookingID int64, actor Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RolePetOwner:
		if b.OwnerID != actor.ID {
			return nil, ErrUnauthorized
		}
	case domain.RoleProvider:
		if b.ProviderID != actor.ID {
			return nil, ErrUnauthorized
		}
	default:
		return nil, ErrUnauthorized
	}
	return b, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *Service) ListForProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByProvider(ctx, providerID, limit, offset)
}
