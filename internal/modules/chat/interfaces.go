package chat

import (
	"context"

	"petmarket/internal/domain"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, c *domain.Conversation) error
	GetConversationByParticipants(ctx context.Context, a, b int64, bookingID *int64) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID string, userID int64) error
}
