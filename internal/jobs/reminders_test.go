package jobs

import (
	"context"
	"testing"
	"time"

	"petmarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReminderStore struct {
	mock.Mock
}

func (m *mockReminderStore) ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockReminderStore) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type mockReminderSender struct {
	mock.Mock
}

func (m *mockReminderSender) NotifyBookingReminder(ctx context.Context, userID, bookingID int64, body string) error {
	args := m.Called(ctx, userID, bookingID, body)
	return args.Error(0)
}

func TestRemindersRun(t *testing.T) {
	due := []domain.Booking{
		{ID: 1, OwnerID: 10, ProviderID: 20, BookingTime: time.Now().Add(2 * time.Hour)},
		{ID: 2, OwnerID: 11, ProviderID: 20, BookingTime: time.Now().Add(3 * time.Hour)},
	}

	t.Run("notifies both parties and marks each booking once", func(t *testing.T) {
		store := new(mockReminderStore)
		sender := new(mockReminderSender)

		store.On("ListConfirmedStartingBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return(due, nil)
		for _, b := range due {
			sender.On("NotifyBookingReminder", mock.Anything, b.OwnerID, b.ID, mock.AnythingOfType("string")).Return(nil)
			sender.On("NotifyBookingReminder", mock.Anything, b.ProviderID, b.ID, mock.AnythingOfType("string")).Return(nil)
			store.On("MarkReminded", mock.Anything, b.ID, mock.AnythingOfType("time.Time")).Return(nil)
		}

		NewReminders(store, sender, 24*time.Hour).Run()

		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("a failed owner notification leaves the booking unmarked", func(t *testing.T) {
		store := new(mockReminderStore)
		sender := new(mockReminderSender)

		store.On("ListConfirmedStartingBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return(due[:1], nil)
		sender.On("NotifyBookingReminder", mock.Anything, int64(10), int64(1), mock.AnythingOfType("string")).
			Return(assert.AnError)

		NewReminders(store, sender, 24*time.Hour).Run()

		store.AssertNotCalled(t, "MarkReminded", mock.Anything, mock.Anything, mock.Anything)
	})
}
