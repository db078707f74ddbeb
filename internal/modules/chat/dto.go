package chat

import "time"

type CreateConversationRequest struct {
	PeerID         int64  `json:"peer_id" binding:"required"`
	BookingID      *int64 `json:"booking_id"`
	InitialMessage string `json:"initial_message"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=4000"`
}

type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationResponse struct {
	ID        string    `json:"id"`
	PeerID    int64     `json:"peer_id"`
	BookingID *int64    `json:"booking_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WSEvent is the envelope pushed to connected websocket clients.
type WSEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
