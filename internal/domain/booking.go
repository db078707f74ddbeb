package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Booking is a reservation of a Service by a pet owner for a point in time.
// OwnerID, ServiceID, ProviderID and PetID are fixed at creation;
// BookingTime and Notes are mutable only while status is pending.
type Booking struct {
	ID              int64         `json:"id"`
	OwnerID         int64         `json:"owner_id" validate:"required"`
	ServiceID       int64         `json:"service_id" validate:"required"`
	ProviderID      int64         `json:"provider_id"`
	PetID           int64         `json:"pet_id" validate:"required"`
	BookingTime     time.Time     `json:"booking_time" validate:"required"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentIntentID *string       `json:"payment_intent_id,omitempty"`
	AmountCents     int64         `json:"amount_cents"`
	Notes           string        `json:"notes,omitempty" gorm:"type:text"`
	RemindedAt      *time.Time    `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
