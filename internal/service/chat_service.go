package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/domain"
	"github.com/luka90/amora/internal/repository"
	"github.com/luka90/amora/pkg/ids"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrEmptyBody            = errors.New("message body is empty")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMatched           = errors.New("profiles are not matched")
	ErrInvalidParticipants  = errors.New("conversations require exactly two distinct participants")
)

// MessageBroadcaster fans a persisted message out to connected sessions.
// Callers publish only after the durable insert succeeded, so no client ever
// sees a message that a concurrent history read would miss.
type MessageBroadcaster interface {
	BroadcastMessage(msg *domain.Message)
}

type ChatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	interactions  repository.InteractionRepository
	broadcaster   MessageBroadcaster
}

func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	interactions repository.InteractionRepository,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		interactions:  interactions,
	}
}

// SetBroadcaster sets the real-time fan-out (optional dependency).
func (s *ChatService) SetBroadcaster(b MessageBroadcaster) {
	s.broadcaster = b
}

// GetOrCreateConversation returns the pairwise conversation between two
// matched profiles, creating it if match formation has not already done so.
func (s *ChatService) GetOrCreateConversation(ctx context.Context, profileID, otherID uuid.UUID) (*domain.Conversation, error) {
	match, err := s.interactions.MatchBetween(ctx, profileID, otherID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrNotMatched
	}

	conv, err := s.conversations.GetByParticipants(ctx, profileID, otherID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	return s.CreateConversation(ctx, []uuid.UUID{profileID, otherID})
}

// CreateConversation creates a pairwise conversation. It fails with
// ErrInvalidParticipants when the set is not exactly two distinct profiles
// or when a conversation for this pair already exists; idempotent lookup is
// the caller's job.
func (s *ChatService) CreateConversation(ctx context.Context, participants []uuid.UUID) (*domain.Conversation, error) {
	if len(participants) != 2 || participants[0] == participants[1] {
		return nil, ErrInvalidParticipants
	}

	existing, err := s.conversations.GetByParticipants(ctx, participants[0], participants[1])
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvalidParticipants
	}

	conv := &domain.Conversation{
		ID:           uuid.New(),
		Participants: participants,
		CreatedAt:    time.Now(),
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	return conv, nil
}

// SendMessage persists a message and then fans it out. The broadcast always
// follows the durable insert.
func (s *ChatService) SendMessage(ctx context.Context, senderID, conversationID uuid.UUID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	now := time.Now()
	msg := &domain.Message{
		ID:             ids.NewMessageID(now),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      now,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(msg)
	}

	return msg, nil
}

// ListMessages returns the conversation's messages in creation order.
func (s *ChatService) ListMessages(ctx context.Context, profileID, conversationID uuid.UUID) ([]domain.Message, error) {
	if err := s.checkParticipant(ctx, profileID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID, profileID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// MarkMessageRead records a read marker. Reading your own message is a
// no-op, as is re-reading.
func (s *ChatService) MarkMessageRead(ctx context.Context, profileID uuid.UUID, messageID string) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.SenderID == profileID {
		return nil
	}
	if err := s.checkParticipant(ctx, profileID, msg.ConversationID); err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, messageID, profileID)
}

// MarkConversationRead marks every unread message in the conversation as
// read for the profile, returning how many markers were created. Used when
// a participant opens a conversation.
func (s *ChatService) MarkConversationRead(ctx context.Context, profileID, conversationID uuid.UUID) (int64, error) {
	if err := s.checkParticipant(ctx, profileID, conversationID); err != nil {
		return 0, err
	}
	return s.messages.MarkConversationRead(ctx, conversationID, profileID)
}

// UnreadCount counts messages in one conversation not sent by the profile
// and lacking its read marker.
func (s *ChatService) UnreadCount(ctx context.Context, profileID, conversationID uuid.UUID) (int, error) {
	if err := s.checkParticipant(ctx, profileID, conversationID); err != nil {
		return 0, err
	}
	return s.messages.UnreadCount(ctx, conversationID, profileID)
}

// TotalUnreadCount sums unread messages across every conversation the
// profile participates in.
func (s *ChatService) TotalUnreadCount(ctx context.Context, profileID uuid.UUID) (int, error) {
	return s.messages.TotalUnreadCount(ctx, profileID)
}

// ListConversations returns the profile's inbox, annotated with unread
// counts and last-message times.
func (s *ChatService) ListConversations(ctx context.Context, profileID uuid.UUID) ([]domain.Conversation, error) {
	convs, err := s.conversations.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

// IsParticipant reports whether the profile may join the conversation's
// broadcast group.
func (s *ChatService) IsParticipant(ctx context.Context, profileID, conversationID uuid.UUID) (bool, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return false, err
	}
	if conv == nil {
		return false, nil
	}
	return conv.HasParticipant(profileID), nil
}

func (s *ChatService) checkParticipant(ctx context.Context, profileID, conversationID uuid.UUID) error {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversationNotFound
	}
	if !conv.HasParticipant(profileID) {
		return ErrNotParticipant
	}
	return nil
}
