// Package presence tracks ephemeral online and typing state in TTL'd caches.
// Entries expire on their own; a missing or expired entry reads as false.
// Nothing here survives a restart, and nothing here may affect message or
// conversation correctness.
package presence

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// OnlineTTL is refreshed on every qualifying request; expiry is the
	// compensating control for ungraceful disconnects.
	OnlineTTL = 15 * time.Second
	// TypingTTL covers the gap between keystroke-level pings.
	TypingTTL = 6 * time.Second
)

// Store is a pure key-expiry cache for presence and typing flags.
type Store interface {
	MarkOnline(ctx context.Context, profileID uuid.UUID) error
	IsOnline(ctx context.Context, profileID uuid.UUID) (bool, error)

	SetTyping(ctx context.Context, conversationID, profileID uuid.UUID) error
	IsTyping(ctx context.Context, conversationID, profileID uuid.UUID) (bool, error)
}

func onlineKey(profileID uuid.UUID) string {
	return "online:" + profileID.String()
}

func typingKey(conversationID, profileID uuid.UUID) string {
	return "typing:" + conversationID.String() + ":" + profileID.String()
}
