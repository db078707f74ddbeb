package domain

import "time"

type ServiceType string

const (
	ServiceWalking  ServiceType = "walking"
	ServiceSitting  ServiceType = "sitting"
	ServiceGrooming ServiceType = "grooming"
	ServiceBoarding ServiceType = "boarding"
	ServiceVet      ServiceType = "vet"
)

// Service is a bookable offering published by a provider.
type Service struct {
	ID          int64       `json:"id"`
	ProviderID  int64       `json:"provider_id" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Type        ServiceType `json:"type" validate:"required"`
	PriceCents  int64       `json:"price_cents" validate:"required,gt=0"`
	DurationMin int         `json:"duration_min,omitempty"`
	Active      bool        `json:"active"`
	RatingAvg   float64     `json:"rating_avg"`
	RatingCount int         `json:"rating_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
