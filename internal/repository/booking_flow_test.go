package repository

import (
	"context"
	"testing"
	"time"

	"petmarket/internal/database"
	"petmarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB) (*domain.Booking, *domain.Service) {
	t.Helper()
	ctx := context.Background()

	users := NewUserRepository(db)
	owner := &domain.User{Email: "owner@test.io", PasswordHash: "x", Role: domain.RolePetOwner, Name: "Owner"}
	provider := &domain.User{Email: "provider@test.io", PasswordHash: "x", Role: domain.RoleProvider, Name: "Provider"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, provider))

	pets := NewPetRepository(db)
	pet := &domain.Pet{OwnerID: owner.ID, Name: "Rex", Species: "dog"}
	require.NoError(t, pets.Create(ctx, pet))

	services := NewServiceRepository(db)
	svc := &domain.Service{
		ProviderID: provider.ID,
		Title:      "Walk",
		Type:       domain.ServiceWalking,
		PriceCents: 1500,
		Active:     true,
	}
	require.NoError(t, services.Create(ctx, svc))

	bookings := NewBookingRepository(db)
	b := &domain.Booking{
		OwnerID:       owner.ID,
		ServiceID:     svc.ID,
		ProviderID:    provider.ID,
		PetID:         pet.ID,
		BookingTime:   time.Now().Add(24 * time.Hour).UTC(),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		AmountCents:   svc.PriceCents,
	}
	require.NoError(t, bookings.Create(ctx, b))
	return b, svc
}

func TestBookingLifecycleAgainstDatabase(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	b, svc := seedBooking(t, db)

	// pending -> confirmed -> completed, each via a conditional write.
	ok, err := bookings.UpdateStatusIfCurrent(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	// A write that assumed the stale status misses.
	ok, err = bookings.UpdateStatusIfCurrent(ctx, b.ID, domain.BookingPending, domain.BookingCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = bookings.UpdateStatusIfCurrent(ctx, b.ID, domain.BookingConfirmed, domain.BookingCompleted)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)

	// Review lands once; the unique index rejects a duplicate.
	reviews := NewReviewRepository(db)
	rv := &domain.Review{
		BookingID:  b.ID,
		ServiceID:  svc.ID,
		OwnerID:    b.OwnerID,
		ProviderID: b.ProviderID,
		Rating:     5,
		Comment:    "flawless",
	}
	require.NoError(t, reviews.Create(ctx, rv))

	dup := &domain.Review{BookingID: b.ID, ServiceID: svc.ID, OwnerID: b.OwnerID, ProviderID: b.ProviderID, Rating: 1}
	err = reviews.Create(ctx, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")

	exists, err := reviews.ExistsForBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Aggregation folds the review into the service row.
	services := NewServiceRepository(db)
	require.NoError(t, services.RefreshRating(ctx, svc.ID))
	fresh, err := services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.RatingCount)
	assert.InDelta(t, 5.0, fresh.RatingAvg, 0.001)
}

func TestPaymentIntentSetOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	b, _ := seedBooking(t, db)

	ok, err := bookings.SetPaymentIntentIfEmpty(ctx, b.ID, "pi_first")
	require.NoError(t, err)
	assert.True(t, ok)

	// The second writer loses and nothing is overwritten.
	ok, err = bookings.SetPaymentIntentIfEmpty(ctx, b.ID, "pi_second")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := bookings.GetByPaymentIntentID(ctx, "pi_first")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = bookings.GetByPaymentIntentID(ctx, "pi_second")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid))
	got, err = bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
}

func TestMarkPaidIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	b, _ := seedBooking(t, db)

	records := NewPaymentRepository(db)
	require.NoError(t, records.Create(ctx, &domain.PaymentRecord{
		BookingID:   b.ID,
		IntentID:    "pi_test",
		AmountCents: b.AmountCents,
		Status:      domain.PaymentRecordCreated,
	}))

	changed, err := records.MarkPaidIdempotent(ctx, "pi_test", `{"ok":true}`, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, changed)

	// Replay of the same webhook changes nothing.
	changed, err = records.MarkPaidIdempotent(ctx, "pi_test", `{"ok":true}`, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, changed)

	// A failed event after paid must not downgrade the record.
	require.NoError(t, records.MarkFailed(ctx, "pi_test", `{"ok":false}`))
	var status string
	require.NoError(t, db.Raw("SELECT status FROM payment_records WHERE intent_id = ?", "pi_test").Scan(&status).Error)
	assert.Equal(t, string(domain.PaymentRecordPaid), status)
}

func TestReminderQueries(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	b, _ := seedBooking(t, db)
	_, err := bookings.UpdateStatusIfCurrent(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed)
	require.NoError(t, err)

	due, err := bookings.ListConfirmedStartingBefore(ctx, time.Now().Add(48*time.Hour).UTC())
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, bookings.MarkReminded(ctx, b.ID, time.Now().UTC()))

	due, err = bookings.ListConfirmedStartingBefore(ctx, time.Now().Add(48*time.Hour).UTC())
	require.NoError(t, err)
	assert.Empty(t, due)
}
