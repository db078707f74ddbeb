package domain

import "time"

// Conversation is a 1-on-1 thread between a pet owner and a provider,
// optionally tied to a booking. ParticipantA < ParticipantB always.
type Conversation struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ParticipantA int64     `json:"participant_a"`
	ParticipantB int64     `json:"participant_b"`
	BookingID    *int64    `json:"booking_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content" gorm:"type:text"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
