package presence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_OnlineExpiry(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()
	profile := uuid.New()

	online, err := store.IsOnline(ctx, profile)
	require.NoError(t, err)
	assert.False(t, online, "unknown profile reads as offline")

	require.NoError(t, store.MarkOnline(ctx, profile))

	now = now.Add(OnlineTTL - time.Second)
	online, err = store.IsOnline(ctx, profile)
	require.NoError(t, err)
	assert.True(t, online)

	now = now.Add(2 * time.Second)
	online, err = store.IsOnline(ctx, profile)
	require.NoError(t, err)
	assert.False(t, online, "entry lapses after the TTL")
}

func TestMemoryStore_MarkOnlineRefreshesTTL(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()
	profile := uuid.New()

	require.NoError(t, store.MarkOnline(ctx, profile))

	// Refresh just before expiry restarts the window.
	now = now.Add(OnlineTTL - time.Second)
	require.NoError(t, store.MarkOnline(ctx, profile))

	now = now.Add(OnlineTTL - time.Second)
	online, err := store.IsOnline(ctx, profile)
	require.NoError(t, err)
	assert.True(t, online)
}

func TestMemoryStore_TypingScopedToConversation(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()
	profile := uuid.New()
	convA := uuid.New()
	convB := uuid.New()

	require.NoError(t, store.SetTyping(ctx, convA, profile))

	typing, err := store.IsTyping(ctx, convA, profile)
	require.NoError(t, err)
	assert.True(t, typing)

	typing, err = store.IsTyping(ctx, convB, profile)
	require.NoError(t, err)
	assert.False(t, typing, "typing flags do not leak across conversations")

	now = now.Add(TypingTTL + time.Second)
	typing, err = store.IsTyping(ctx, convA, profile)
	require.NoError(t, err)
	assert.False(t, typing)
}
