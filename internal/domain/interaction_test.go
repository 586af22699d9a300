package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	low := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	high := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	p1, p2 := CanonicalPair(low, high)
	assert.Equal(t, low, p1)
	assert.Equal(t, high, p2)

	// Order of the inputs never matters.
	p1, p2 = CanonicalPair(high, low)
	assert.Equal(t, low, p1)
	assert.Equal(t, high, p2)
}

func TestMatchOtherProfile(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	p1, p2 := CanonicalPair(a, b)
	m := &Match{Profile1ID: p1, Profile2ID: p2}

	assert.Equal(t, b, m.OtherProfile(a))
	assert.Equal(t, a, m.OtherProfile(b))
}

func TestConversationParticipants(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	outsider := uuid.New()
	conv := &Conversation{ID: uuid.New(), Participants: []uuid.UUID{a, b}}

	assert.True(t, conv.HasParticipant(a))
	assert.True(t, conv.HasParticipant(b))
	assert.False(t, conv.HasParticipant(outsider))

	assert.Equal(t, b, conv.OtherParticipant(a))
	assert.Equal(t, a, conv.OtherParticipant(b))
	assert.Equal(t, uuid.Nil, conv.OtherParticipant(outsider))
}
