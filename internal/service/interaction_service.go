package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/domain"
	"github.com/luka90/amora/internal/repository"
)

var (
	ErrCannotBlockSelf  = errors.New("cannot block yourself")
	ErrCannotReportSelf = errors.New("cannot report yourself")
	ErrInvalidReason    = errors.New("invalid report reason")
)

// MatchNotifier dispatches match notifications to the out-of-scope
// notification service. Implementations are fire-and-forget: failures are
// theirs to log and must never abort match creation.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, profileID, otherProfileID uuid.UUID)
}

// MatchResult reports what a like did. A blocked pair, a self-like and a
// repeated like all come back with every field false — suppressed, not an
// error.
type MatchResult struct {
	Liked        bool                 `json:"liked"`
	Matched      bool                 `json:"matched"`
	NewMatch     bool                 `json:"new_match"`
	Match        *domain.Match        `json:"match,omitempty"`
	Conversation *domain.Conversation `json:"conversation,omitempty"`
}

type InteractionService struct {
	interactions repository.InteractionRepository
	notifier     MatchNotifier
}

func NewInteractionService(interactions repository.InteractionRepository) *InteractionService {
	return &InteractionService{interactions: interactions}
}

// SetNotifier sets the match notification dispatcher (optional dependency).
func (s *InteractionService) SetNotifier(n MatchNotifier) {
	s.notifier = n
}

// RegisterLike records a like and, on mutual interest, forms the match and
// its conversation. Atomicity lives in the repository transaction; this
// layer handles the preconditions and the notification side effect.
func (s *InteractionService) RegisterLike(ctx context.Context, fromID, toID uuid.UUID) (*MatchResult, error) {
	if fromID == toID {
		return &MatchResult{}, nil
	}

	blocked, err := s.interactions.IsBlocked(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return &MatchResult{}, nil
	}

	out, err := s.interactions.RegisterLike(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("registering like: %w", err)
	}

	result := &MatchResult{
		Liked:        out.LikeCreated,
		Matched:      out.Match != nil,
		NewMatch:     out.MatchCreated,
		Match:        out.Match,
		Conversation: out.Conversation,
	}

	if out.MatchCreated && s.notifier != nil {
		s.notifier.NotifyMatch(ctx, out.Match.Profile1ID, out.Match.Profile2ID)
		s.notifier.NotifyMatch(ctx, out.Match.Profile2ID, out.Match.Profile1ID)
	}

	return result, nil
}

// Block blocks a profile and cascades removal of likes and the match.
func (s *InteractionService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrCannotBlockSelf
	}
	return s.interactions.CreateBlock(ctx, blockerID, blockedID)
}

func (s *InteractionService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return s.interactions.DeleteBlock(ctx, blockerID, blockedID)
}

func (s *InteractionService) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.interactions.IsBlocked(ctx, a, b)
}

// Skip records a discovery pass. Self-skips and repeats are silent no-ops.
func (s *InteractionService) Skip(ctx context.Context, fromID, toID uuid.UUID) error {
	if fromID == toID {
		return nil
	}
	return s.interactions.CreateSkip(ctx, fromID, toID)
}

func (s *InteractionService) Report(ctx context.Context, reporterID, reportedID uuid.UUID, reason, description string) (*domain.Report, error) {
	if reporterID == reportedID {
		return nil, ErrCannotReportSelf
	}

	switch reason {
	case domain.ReportReasonSpam, domain.ReportReasonInappropriate,
		domain.ReportReasonHarassment, domain.ReportReasonUnderage,
		domain.ReportReasonScam, domain.ReportReasonOther:
	default:
		return nil, ErrInvalidReason
	}

	report := &domain.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ReportedID:  reportedID,
		Reason:      reason,
		Description: description,
		Status:      domain.ReportStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.interactions.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}
	return report, nil
}

func (s *InteractionService) ListMatches(ctx context.Context, profileID uuid.UUID) ([]domain.Match, error) {
	matches, err := s.interactions.ListMatches(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}
