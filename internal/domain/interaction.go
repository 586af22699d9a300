package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like is a directed edge, unique per (from, to) pair.
type Like struct {
	FromProfileID uuid.UUID `json:"from_profile_id"`
	ToProfileID   uuid.UUID `json:"to_profile_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Match is the undirected pairing behind a conversation. The two profile ids
// are stored in canonical order (Profile1ID < Profile2ID lexically) so an
// unordered pair maps to exactly one row.
type Match struct {
	ID         uuid.UUID `json:"id"`
	Profile1ID uuid.UUID `json:"profile1_id"`
	Profile2ID uuid.UUID `json:"profile2_id"`
	CreatedAt  time.Time `json:"created_at"`
	// Joined field for match listings
	OtherProfileID uuid.UUID `json:"other_profile_id,omitempty"`
}

// OtherProfile returns the match peer of profileID.
func (m *Match) OtherProfile(profileID uuid.UUID) uuid.UUID {
	if m.Profile1ID == profileID {
		return m.Profile2ID
	}
	return m.Profile1ID
}

// CanonicalPair orders two profile ids by their string form. Any consistent
// total order works; this matches the order used for the matches unique
// constraint.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// Block is a directed edge; its presence in either direction suppresses all
// interaction between the pair.
type Block struct {
	BlockerID uuid.UUID `json:"blocker_id"`
	BlockedID uuid.UUID `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Skip records a "pass" in discovery, unique per (from, to) pair.
type Skip struct {
	FromProfileID uuid.UUID `json:"from_profile_id"`
	ToProfileID   uuid.UUID `json:"to_profile_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Report reasons and statuses.
const (
	ReportReasonSpam          = "spam"
	ReportReasonInappropriate = "inappropriate"
	ReportReasonHarassment    = "harassment"
	ReportReasonUnderage      = "underage"
	ReportReasonScam          = "scam"
	ReportReasonOther         = "other"

	ReportStatusPending     = "pending"
	ReportStatusReviewed    = "reviewed"
	ReportStatusActionTaken = "action_taken"
	ReportStatusDismissed   = "dismissed"
)

type Report struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  uuid.UUID `json:"reporter_id"`
	ReportedID  uuid.UUID `json:"reported_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
