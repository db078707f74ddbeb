package repository

import (
	"context"
	"time"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetConversationByParticipants expects a < b (callers normalize the pair).
func (r *ChatRepository) GetConversationByParticipants(ctx context.Context, a, b int64, bookingID *int64) (*domain.Conversation, error) {
	q := r.db.WithContext(ctx).Where("participant_a = ? AND participant_b = ?", a, b)
	if bookingID != nil {
		q = q.Where("booking_id = ?", *bookingID)
	} else {
		q = q.Where("booking_id IS NULL")
	}
	var c domain.Conversation
	if err := q.First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepository) ListConversationsForUser(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", m.ConversationID).
			Update("updated_at", time.Now().UTC()).Error
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks every message in the conversation not sent by userID.
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID string, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Update("is_read", true).Error
}
