package booking

import "time"

type CreateBookingRequest struct {
	ServiceID   int64     `json:"service_id" binding:"required"`
	PetID       int64     `json:"pet_id" binding:"required"`
	BookingTime time.Time `json:"booking_time" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateBookingRequest struct {
	BookingTime time.Time `json:"booking_time" binding:"required"`
	Notes       string    `json:"notes"`
}

type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}
