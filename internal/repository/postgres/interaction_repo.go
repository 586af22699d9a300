package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luka90/amora/internal/domain"
	"github.com/luka90/amora/internal/repository"
)

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

// RegisterLike runs the whole like→match→conversation sequence in a single
// transaction. The unique constraints on likes and matches arbitrate races:
// concurrent reciprocal likes converge on one match row, and only the
// transaction that inserted it creates the conversation.
func (r *InteractionRepo) RegisterLike(ctx context.Context, fromID, toID uuid.UUID) (*repository.LikeOutcome, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := &repository.LikeOutcome{}
	now := time.Now()

	tag, err := tx.Exec(ctx, `
		INSERT INTO likes (from_profile_id, to_profile_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_profile_id, to_profile_id) DO NOTHING`,
		fromID, toID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting like: %w", err)
	}
	out.LikeCreated = tag.RowsAffected() == 1

	// Repeated likes are silently ignored.
	if !out.LikeCreated {
		return out, tx.Commit(ctx)
	}

	var reciprocal bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE from_profile_id = $1 AND to_profile_id = $2)`,
		toID, fromID,
	).Scan(&reciprocal)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		return out, tx.Commit(ctx)
	}

	p1, p2 := domain.CanonicalPair(fromID, toID)
	match := &domain.Match{ID: uuid.New(), Profile1ID: p1, Profile2ID: p2, CreatedAt: now}

	err = tx.QueryRow(ctx, `
		INSERT INTO matches (id, profile1_id, profile2_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile1_id, profile2_id) DO NOTHING
		RETURNING id, created_at`,
		match.ID, p1, p2, now,
	).Scan(&match.ID, &match.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Lost the race to a concurrent reciprocal like; read the winner.
		err = tx.QueryRow(ctx,
			`SELECT id, created_at FROM matches WHERE profile1_id = $1 AND profile2_id = $2`,
			p1, p2,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("inserting match: %w", err)
	default:
		out.MatchCreated = true
	}
	out.Match = match

	if out.MatchCreated {
		conv := &domain.Conversation{
			ID:           uuid.New(),
			Participants: []uuid.UUID{p1, p2},
			CreatedAt:    now,
		}
		if err := insertConversation(ctx, tx, conv); err != nil {
			return nil, err
		}
		out.Conversation = conv
	}

	return out, tx.Commit(ctx)
}

func (r *InteractionRepo) HasLike(ctx context.Context, fromID, toID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE from_profile_id = $1 AND to_profile_id = $2)`,
		fromID, toID,
	).Scan(&exists)
	return exists, err
}

func (r *InteractionRepo) MatchBetween(ctx context.Context, a, b uuid.UUID) (*domain.Match, error) {
	p1, p2 := domain.CanonicalPair(a, b)
	var match domain.Match
	err := r.pool.QueryRow(ctx,
		`SELECT id, profile1_id, profile2_id, created_at FROM matches WHERE profile1_id = $1 AND profile2_id = $2`,
		p1, p2,
	).Scan(&match.ID, &match.Profile1ID, &match.Profile2ID, &match.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &match, err
}

func (r *InteractionRepo) ListMatches(ctx context.Context, profileID uuid.UUID) ([]domain.Match, error) {
	query := `
		SELECT id, profile1_id, profile2_id, created_at,
			CASE WHEN profile1_id = $1 THEN profile2_id ELSE profile1_id END AS other_profile_id
		FROM matches
		WHERE profile1_id = $1 OR profile2_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(
			&m.ID, &m.Profile1ID, &m.Profile2ID, &m.CreatedAt, &m.OtherProfileID,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// CreateBlock inserts the block and removes every like and match between the
// pair in one transaction.
func (r *InteractionRepo) CreateBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO blocks (blocker_id, blocked_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING`,
		blockerID, blockedID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM likes
		WHERE (from_profile_id = $1 AND to_profile_id = $2)
			OR (from_profile_id = $2 AND to_profile_id = $1)`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("deleting likes: %w", err)
	}

	p1, p2 := domain.CanonicalPair(blockerID, blockedID)
	_, err = tx.Exec(ctx,
		`DELETE FROM matches WHERE profile1_id = $1 AND profile2_id = $2`,
		p1, p2,
	)
	if err != nil {
		return fmt.Errorf("deleting match: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *InteractionRepo) DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`,
		blockerID, blockedID,
	)
	return err
}

func (r *InteractionRepo) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2)
				OR (blocker_id = $2 AND blocked_id = $1)
		)`,
		a, b,
	).Scan(&exists)
	return exists, err
}

func (r *InteractionRepo) CreateSkip(ctx context.Context, fromID, toID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO skips (from_profile_id, to_profile_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_profile_id, to_profile_id) DO NOTHING`,
		fromID, toID, time.Now(),
	)
	return err
}

func (r *InteractionRepo) CreateReport(ctx context.Context, report *domain.Report) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reports (id, reporter_id, reported_id, reason, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.ReporterID, report.ReportedID,
		report.Reason, report.Description, report.Status, report.CreatedAt,
	)
	return err
}
