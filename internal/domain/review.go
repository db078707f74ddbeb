package domain

import "time"

// Review is the single rating a pet owner may leave for a completed booking.
type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id" gorm:"uniqueIndex"`
	ServiceID  int64     `json:"service_id"`
	OwnerID    int64     `json:"owner_id"`
	ProviderID int64     `json:"provider_id"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}
