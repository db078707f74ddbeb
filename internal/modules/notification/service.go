package notification

import (
	"context"
	"errors"
	"fmt"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

// Service persists notifications and mirrors them over websocket.
// It implements the sender interfaces the booking and review modules
// declare, so those modules stay decoupled from delivery.
type Service struct {
	repo   NotificationRepository
	pusher Pusher
}

func NewService(repo NotificationRepository, pusher Pusher) *Service {
	return &Service{repo: repo, pusher: pusher}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, providerID, bookingID int64) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:    providerID,
		Type:      domain.NotifBookingCreated,
		Title:     "New booking request",
		Body:      fmt.Sprintf("You have a new booking request #%d awaiting confirmation.", bookingID),
		BookingID: &bookingID,
	})
}

func (s *Service) NotifyBookingStatusChanged(ctx context.Context, userID, bookingID int64, status domain.BookingStatus) error {
	var t domain.NotificationType
	var title string
	switch status {
	case domain.BookingConfirmed:
		t, title = domain.NotifBookingConfirmed, "Booking confirmed"
	case domain.BookingCancelled:
		t, title = domain.NotifBookingCancelled, "Booking cancelled"
	case domain.BookingCompleted:
		t, title = domain.NotifBookingCompleted, "Booking completed"
	default:
		return nil
	}
	return s.deliver(ctx, &domain.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Body:      fmt.Sprintf("Booking #%d is now %s.", bookingID, status),
		BookingID: &bookingID,
	})
}

func (s *Service) NotifyReviewReceived(ctx context.Context, providerID, bookingID int64, rating int) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:    providerID,
		Type:      domain.NotifReviewReceived,
		Title:     "New review",
		Body:      fmt.Sprintf("Booking #%d was rated %d/5.", bookingID, rating),
		BookingID: &bookingID,
	})
}

func (s *Service) NotifyBookingReminder(ctx context.Context, userID, bookingID int64, body string) error {
	return s.deliver(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifBookingReminder,
		Title:     "Upcoming booking",
		Body:      body,
		BookingID: &bookingID,
	})
}

func (s *Service) deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.pusher != nil {
		s.pusher.SendToUser(n.UserID, map[string]any{"type": "notification", "payload": n})
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListForUser(ctx, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
