package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"petmarket/internal/domain"

	"github.com/go-co-op/gocron/v2"
)

type BookingReminderStore interface {
	ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}

type ReminderSender interface {
	NotifyBookingReminder(ctx context.Context, userID, bookingID int64, body string) error
}

// Reminders periodically notifies both parties of confirmed bookings that
// start within the lookahead window.
type Reminders struct {
	bookings  BookingReminderStore
	sender    ReminderSender
	lookahead time.Duration
}

func NewReminders(bookings BookingReminderStore, sender ReminderSender, lookahead time.Duration) *Reminders {
	if lookahead <= 0 {
		lookahead = 24 * time.Hour
	}
	return &Reminders{bookings: bookings, sender: sender, lookahead: lookahead}
}

// Start registers the job on the scheduler. The caller owns the scheduler
// lifecycle and calls Start/Shutdown on it.
func (r *Reminders) Start(sched gocron.Scheduler, every time.Duration) error {
	if every <= 0 {
		every = 15 * time.Minute
	}
	_, err := sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(r.Run),
	)
	return err
}

func (r *Reminders) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(r.lookahead)
	due, err := r.bookings.ListConfirmedStartingBefore(ctx, cutoff)
	if err != nil {
		log.Printf("reminder job: list bookings: %v", err)
		return
	}

	for i := range due {
		b := &due[i]
		body := fmt.Sprintf("Booking #%d starts at %s.", b.ID, b.BookingTime.Format(time.RFC1123))
		if err := r.sender.NotifyBookingReminder(ctx, b.OwnerID, b.ID, body); err != nil {
			log.Printf("reminder job: notify owner %d: %v", b.OwnerID, err)
			continue
		}
		if err := r.sender.NotifyBookingReminder(ctx, b.ProviderID, b.ID, body); err != nil {
			log.Printf("reminder job: notify provider %d: %v", b.ProviderID, err)
		}
		if err := r.bookings.MarkReminded(ctx, b.ID, time.Now().UTC()); err != nil {
			log.Printf("reminder job: mark reminded %d: %v", b.ID, err)
		}
	}
}
