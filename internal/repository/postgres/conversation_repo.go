package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luka90/amora/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertConversation(ctx, tx, conv); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertConversation writes the conversation and its participant rows inside
// an existing transaction. Shared with the match registration transaction.
func insertConversation(ctx context.Context, tx pgx.Tx, conv *domain.Conversation) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO conversations (id, created_at) VALUES ($1, $2)`,
		conv.ID, conv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting conversation: %w", err)
	}

	for _, p := range conv.Participants {
		_, err := tx.Exec(ctx,
			`INSERT INTO conversation_participants (conversation_id, profile_id) VALUES ($1, $2)`,
			conv.ID, p,
		)
		if err != nil {
			return fmt.Errorf("inserting participant: %w", err)
		}
	}
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&conv.ID, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	participants, err := r.listParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.Participants = participants
	return &conv, nil
}

func (r *ConversationRepo) GetByParticipants(ctx context.Context, a, b uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT c.id, c.created_at
		FROM conversations c
		JOIN conversation_participants p1 ON p1.conversation_id = c.id AND p1.profile_id = $1
		JOIN conversation_participants p2 ON p2.conversation_id = c.id AND p2.profile_id = $2
		LIMIT 1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&conv.ID, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	participants, err := r.listParticipants(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	conv.Participants = participants
	return &conv, nil
}

func (r *ConversationRepo) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Conversation, error) {
	query := `
		SELECT c.id, c.created_at,
			(SELECT cp2.profile_id FROM conversation_participants cp2
				WHERE cp2.conversation_id = c.id AND cp2.profile_id <> $1 LIMIT 1) AS other_profile_id,
			(SELECT MAX(m.created_at) FROM messages m
				WHERE m.conversation_id = c.id) AS last_message_at,
			(SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender_id <> $1
					AND NOT EXISTS(
						SELECT 1 FROM message_reads r
						WHERE r.message_id = m.id AND r.profile_id = $1
					)) AS unread_count
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.profile_id = $1
		ORDER BY last_message_at DESC NULLS LAST, c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.ID, &conv.CreatedAt,
			&conv.OtherProfileID, &conv.LastMessageAt, &conv.UnreadCount,
		); err != nil {
			return nil, err
		}
		conv.Participants = []uuid.UUID{profileID, conv.OtherProfileID}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) listParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT profile_id FROM conversation_participants WHERE conversation_id = $1 ORDER BY profile_id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []uuid.UUID
	for rows.Next() {
		var p uuid.UUID
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
