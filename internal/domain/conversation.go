package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a pairwise chat between two matched profiles. The
// participant set is fixed at creation and never changes.
type Conversation struct {
	ID           uuid.UUID   `json:"id"`
	Participants []uuid.UUID `json:"participants"`
	CreatedAt    time.Time   `json:"created_at"`
	// Joined fields for inbox rendering
	OtherProfileID uuid.UUID  `json:"other_profile_id,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	UnreadCount    int        `json:"unread_count"`
}

// HasParticipant reports whether profileID may read and write this conversation.
func (c *Conversation) HasParticipant(profileID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p == profileID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of profileID in a pairwise conversation,
// or uuid.Nil if profileID is not a participant.
func (c *Conversation) OtherParticipant(profileID uuid.UUID) uuid.UUID {
	if !c.HasParticipant(profileID) {
		return uuid.Nil
	}
	for _, p := range c.Participants {
		if p != profileID {
			return p
		}
	}
	return uuid.Nil
}
