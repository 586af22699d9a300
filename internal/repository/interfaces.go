package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/domain"
)

// LikeOutcome is what registering a like actually did. All creations happen
// in one transaction; unique constraints arbitrate concurrent reciprocal
// likes so exactly one match and one conversation ever exist per pair.
type LikeOutcome struct {
	LikeCreated  bool
	Match        *domain.Match
	MatchCreated bool
	Conversation *domain.Conversation
}

type InteractionRepository interface {
	// RegisterLike inserts the like if absent, checks for the reciprocal
	// like and, on mutual interest, get-or-creates the canonical match row
	// plus its conversation, all atomically.
	RegisterLike(ctx context.Context, fromID, toID uuid.UUID) (*LikeOutcome, error)
	HasLike(ctx context.Context, fromID, toID uuid.UUID) (bool, error)

	MatchBetween(ctx context.Context, a, b uuid.UUID) (*domain.Match, error)
	ListMatches(ctx context.Context, profileID uuid.UUID) ([]domain.Match, error)

	// CreateBlock inserts the block and cascades deletion of any likes and
	// match between the pair, atomically.
	CreateBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)

	CreateSkip(ctx context.Context, fromID, toID uuid.UUID) error
	CreateReport(ctx context.Context, report *domain.Report) error
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	GetByParticipants(ctx context.Context, a, b uuid.UUID) (*domain.Conversation, error)
	// ListForProfile returns the profile's conversations annotated with the
	// other participant, last message time and unread count, newest first.
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByConversation returns messages in (created_at, id) order, with
	// ReadByMe resolved for forProfile.
	ListByConversation(ctx context.Context, conversationID uuid.UUID, forProfile uuid.UUID) ([]domain.Message, error)

	// MarkRead records that profileID has read the message; repeated calls
	// are no-ops.
	MarkRead(ctx context.Context, messageID string, profileID uuid.UUID) error
	// MarkConversationRead creates read markers for every message in the
	// conversation not sent by profileID and not yet marked, returning how
	// many markers were created.
	MarkConversationRead(ctx context.Context, conversationID, profileID uuid.UUID) (int64, error)

	UnreadCount(ctx context.Context, conversationID, profileID uuid.UUID) (int, error)
	TotalUnreadCount(ctx context.Context, profileID uuid.UUID) (int, error)
}
