package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luka90/amora/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM messages
		WHERE id = $1`
	var msg domain.Message
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &msg, err
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, forProfile uuid.UUID) ([]domain.Message, error) {
	// ULID ids break created_at ties, keeping the order total.
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.created_at,
			EXISTS(
				SELECT 1 FROM message_reads r
				WHERE r.message_id = m.id AND r.profile_id = $2
			) AS read_by_me
		FROM messages m
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC`

	rows, err := r.pool.Query(ctx, query, conversationID, forProfile)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.CreatedAt,
			&msg.ReadByMe,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) MarkRead(ctx context.Context, messageID string, profileID uuid.UUID) error {
	query := `
		INSERT INTO message_reads (message_id, profile_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, profile_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, messageID, profileID, time.Now())
	return err
}

func (r *MessageRepo) MarkConversationRead(ctx context.Context, conversationID, profileID uuid.UUID) (int64, error) {
	query := `
		INSERT INTO message_reads (message_id, profile_id, read_at)
		SELECT m.id, $2, $3
		FROM messages m
		WHERE m.conversation_id = $1 AND m.sender_id <> $2
		ON CONFLICT (message_id, profile_id) DO NOTHING`
	tag, err := r.pool.Exec(ctx, query, conversationID, profileID, time.Now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *MessageRepo) UnreadCount(ctx context.Context, conversationID, profileID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		WHERE m.conversation_id = $1 AND m.sender_id <> $2
			AND NOT EXISTS(
				SELECT 1 FROM message_reads r
				WHERE r.message_id = m.id AND r.profile_id = $2
			)`
	var count int
	err := r.pool.QueryRow(ctx, query, conversationID, profileID).Scan(&count)
	return count, err
}

func (r *MessageRepo) TotalUnreadCount(ctx context.Context, profileID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversation_participants cp
			ON cp.conversation_id = m.conversation_id AND cp.profile_id = $1
		WHERE m.sender_id <> $1
			AND NOT EXISTS(
				SELECT 1 FROM message_reads r
				WHERE r.message_id = m.id AND r.profile_id = $1
			)`
	var count int
	err := r.pool.QueryRow(ctx, query, profileID).Scan(&count)
	return count, err
}
