package domain

import "time"

type PaymentRecordStatus string

const (
	PaymentRecordCreated PaymentRecordStatus = "created"
	PaymentRecordPaid    PaymentRecordStatus = "paid"
	PaymentRecordFailed  PaymentRecordStatus = "failed"
)

// PaymentRecord is the audit row kept per payment intent created at the
// gateway. The booking row stays the source of truth for payment_status;
// this table keeps the raw gateway traffic for reconciliation.
type PaymentRecord struct {
	ID          int64               `json:"id"`
	BookingID   int64               `json:"booking_id"`
	IntentID    string              `json:"intent_id" gorm:"uniqueIndex"`
	AmountCents int64               `json:"amount_cents"`
	Status      PaymentRecordStatus `json:"status"`
	RawBody     string              `json:"-" gorm:"type:text"`
	PaidAt      *time.Time          `json:"paid_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
