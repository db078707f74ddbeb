package repository

import (
	"context"
	"time"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	OwnerID         int64      `gorm:"column:owner_id"`
	ServiceID       int64      `gorm:"column:service_id"`
	ProviderID      int64      `gorm:"column:provider_id"`
	PetID           int64      `gorm:"column:pet_id"`
	BookingTime     time.Time  `gorm:"column:booking_time"`
	Status          string     `gorm:"column:status"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	PaymentIntentID *string    `gorm:"column:payment_intent_id"`
	AmountCents     int64      `gorm:"column:amount_cents"`
	Notes           *string    `gorm:"column:notes"`
	RemindedAt      *time.Time `gorm:"column:reminded_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	return &domain.Booking{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		ServiceID:       m.ServiceID,
		ProviderID:      m.ProviderID,
		PetID:           m.PetID,
		BookingTime:     m.BookingTime,
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		PaymentIntentID: m.PaymentIntentID,
		AmountCents:     m.AmountCents,
		Notes:           notes,
		RemindedAt:      m.RemindedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	return bookingModel{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		ServiceID:       b.ServiceID,
		ProviderID:      b.ProviderID,
		PetID:           b.PetID,
		BookingTime:     b.BookingTime,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentIntentID: b.PaymentIntentID,
		AmountCents:     b.AmountCents,
		Notes:           notes,
		RemindedAt:      b.RemindedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatusIfCurrent writes the new status only when the stored status
// still equals expected. Returns false when the row was not updated, which
// means a concurrent transition won the race (or the booking is gone).
func (r *BookingRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Update("status", string(next))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateDetailsIfPending mutates booking_time/notes only while the booking
// is still pending.
func (r *BookingRepository) UpdateDetailsIfPending(ctx context.Context, id int64, bookingTime time.Time, notes string) (bool, error) {
	updates := map[string]interface{}{
		"booking_time": bookingTime,
		"notes":        notes,
	}
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetPaymentIntentIfEmpty records the gateway intent id exactly once.
// Returns false when an intent id is already stored.
func (r *BookingRepository) SetPaymentIntentIfEmpty(ctx context.Context, id int64, intentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND payment_intent_id IS NULL", id).
		Update("payment_intent_id", intentID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("payment_intent_id = ?", intentID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status)).Error
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("booking_time DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("booking_time DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListConfirmedStartingBefore returns confirmed bookings starting before the
// cutoff that have not been reminded yet. Used by the reminder job.
func (r *BookingRepository) ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ? AND booking_time > ? AND booking_time <= ? AND reminded_at IS NULL",
			string(domain.BookingConfirmed), time.Now().UTC(), cutoff).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND reminded_at IS NULL", id).
		Update("reminded_at", at).Error
}
