package domain

import "time"

type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Species   string    `json:"species" validate:"required"`
	Breed     string    `json:"breed,omitempty"`
	AgeYears  int       `json:"age_years,omitempty"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
