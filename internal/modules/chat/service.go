package chat

import (
	"context"
	"errors"
	"time"

	"petmarket/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	repo ChatRepository
	hub  *Hub
}

func NewService(repo ChatRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// GetOrCreateConversation returns the existing thread between the two users
// (scoped to the booking when one is given) or creates it.
func (s *Service) GetOrCreateConversation(ctx context.Context, userID int64, req CreateConversationRequest) (*domain.Conversation, *domain.Message, error) {
	if req.PeerID == userID {
		return nil, nil, ErrSelfChat
	}

	a, b := userID, req.PeerID
	if a > b {
		a, b = b, a
	}

	conv, err := s.repo.GetConversationByParticipants(ctx, a, b, req.BookingID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		conv = &domain.Conversation{
			ID:           uuid.NewString(),
			ParticipantA: a,
			ParticipantB: b,
			BookingID:    req.BookingID,
		}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, nil, err
		}
	}

	var initial *domain.Message
	if req.InitialMessage != "" {
		initial, err = s.SendMessage(ctx, userID, conv.ID, SendMessageRequest{Content: req.InitialMessage})
		if err != nil {
			return nil, nil, err
		}
	}
	return conv, initial, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.repo.ListConversationsForUser(ctx, userID)
}

func (s *Service) SendMessage(ctx context.Context, senderID int64, conversationID string, req SendMessageRequest) (*domain.Message, error) {
	conv, err := s.getForParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	peer := conv.ParticipantA
	if peer == senderID {
		peer = conv.ParticipantB
	}
	s.hub.SendToUser(peer, WSEvent{Type: "chat.message", Payload: toMessageResponse(msg)})

	return msg, nil
}

func (s *Service) ListMessages(ctx context.Context, userID int64, conversationID string, limit, offset int) ([]domain.Message, error) {
	if _, err := s.getForParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID int64, conversationID string) error {
	if _, err := s.getForParticipant(ctx, conversationID, userID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, conversationID, userID)
}

func (s *Service) getForParticipant(ctx context.Context, conversationID string, userID int64) (*domain.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if conv.ParticipantA != userID && conv.ParticipantB != userID {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func toMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

func toConversationResponse(c *domain.Conversation, viewerID int64) ConversationResponse {
	peer := c.ParticipantA
	if peer == viewerID {
		peer = c.ParticipantB
	}
	return ConversationResponse{
		ID:        c.ID,
		PeerID:    peer,
		BookingID: c.BookingID,
		UpdatedAt: c.UpdatedAt,
	}
}
