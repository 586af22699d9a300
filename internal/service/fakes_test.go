package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/domain"
	"github.com/luka90/amora/internal/repository"
)

type pair struct {
	a, b uuid.UUID
}

// fakeInteractionRepo mirrors the transactional semantics of the postgres
// repo in memory: like uniqueness, canonical match uniqueness, and
// conversation creation only on first match insert.
type fakeInteractionRepo struct {
	mu      sync.Mutex
	likes   map[pair]time.Time
	matches map[pair]*domain.Match
	blocks  map[pair]time.Time
	skips   map[pair]time.Time
	reports []*domain.Report
	convs   []*domain.Conversation
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{
		likes:   make(map[pair]time.Time),
		matches: make(map[pair]*domain.Match),
		blocks:  make(map[pair]time.Time),
		skips:   make(map[pair]time.Time),
	}
}

func (r *fakeInteractionRepo) RegisterLike(_ context.Context, fromID, toID uuid.UUID) (*repository.LikeOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := &repository.LikeOutcome{}
	key := pair{fromID, toID}
	if _, ok := r.likes[key]; ok {
		return out, nil
	}
	r.likes[key] = time.Now()
	out.LikeCreated = true

	if _, ok := r.likes[pair{toID, fromID}]; !ok {
		return out, nil
	}

	p1, p2 := domain.CanonicalPair(fromID, toID)
	canonical := pair{p1, p2}
	if existing, ok := r.matches[canonical]; ok {
		out.Match = existing
		return out, nil
	}

	match := &domain.Match{ID: uuid.New(), Profile1ID: p1, Profile2ID: p2, CreatedAt: time.Now()}
	r.matches[canonical] = match
	out.Match = match
	out.MatchCreated = true

	conv := &domain.Conversation{
		ID:           uuid.New(),
		Participants: []uuid.UUID{p1, p2},
		CreatedAt:    time.Now(),
	}
	r.convs = append(r.convs, conv)
	out.Conversation = conv
	return out, nil
}

func (r *fakeInteractionRepo) HasLike(_ context.Context, fromID, toID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[pair{fromID, toID}]
	return ok, nil
}

func (r *fakeInteractionRepo) MatchBetween(_ context.Context, a, b uuid.UUID) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p1, p2 := domain.CanonicalPair(a, b)
	return r.matches[pair{p1, p2}], nil
}

func (r *fakeInteractionRepo) ListMatches(_ context.Context, profileID uuid.UUID) ([]domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []domain.Match
	for _, m := range r.matches {
		if m.Profile1ID == profileID || m.Profile2ID == profileID {
			copied := *m
			copied.OtherProfileID = m.OtherProfile(profileID)
			matches = append(matches, copied)
		}
	}
	return matches, nil
}

func (r *fakeInteractionRepo) CreateBlock(_ context.Context, blockerID, blockedID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[pair{blockerID, blockedID}]; !ok {
		r.blocks[pair{blockerID, blockedID}] = time.Now()
	}
	delete(r.likes, pair{blockerID, blockedID})
	delete(r.likes, pair{blockedID, blockerID})
	p1, p2 := domain.CanonicalPair(blockerID, blockedID)
	delete(r.matches, pair{p1, p2})
	return nil
}

func (r *fakeInteractionRepo) DeleteBlock(_ context.Context, blockerID, blockedID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, pair{blockerID, blockedID})
	return nil
}

func (r *fakeInteractionRepo) IsBlocked(_ context.Context, a, b uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[pair{a, b}]; ok {
		return true, nil
	}
	_, ok := r.blocks[pair{b, a}]
	return ok, nil
}

func (r *fakeInteractionRepo) CreateSkip(_ context.Context, fromID, toID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skips[pair{fromID, toID}]; !ok {
		r.skips[pair{fromID, toID}] = time.Now()
	}
	return nil
}

func (r *fakeInteractionRepo) CreateReport(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

// fakeChatStore holds the shared chat state; fakeConversationRepo and
// fakeMessageRepo are views over it that satisfy the two repository
// interfaces (Create collides on name, so one type cannot be both).
type fakeChatStore struct {
	mu    sync.Mutex
	convs map[uuid.UUID]*domain.Conversation
	msgs  []*domain.Message
	reads map[string]map[uuid.UUID]bool
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		convs: make(map[uuid.UUID]*domain.Conversation),
		reads: make(map[string]map[uuid.UUID]bool),
	}
}

func (s *fakeChatStore) conversations() repository.ConversationRepository {
	return &fakeConversationRepo{s}
}

func (s *fakeChatStore) messages() repository.MessageRepository {
	return &fakeMessageRepo{s}
}

type fakeConversationRepo struct {
	store *fakeChatStore
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.convs[conv.ID] = conv
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.convs[id], nil
}

func (r *fakeConversationRepo) GetByParticipants(_ context.Context, a, b uuid.UUID) (*domain.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, conv := range r.store.convs {
		if conv.HasParticipant(a) && conv.HasParticipant(b) {
			return conv, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListForProfile(_ context.Context, profileID uuid.UUID) ([]domain.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var convs []domain.Conversation
	for _, conv := range r.store.convs {
		if !conv.HasParticipant(profileID) {
			continue
		}
		copied := *conv
		copied.OtherProfileID = conv.OtherParticipant(profileID)
		copied.UnreadCount = r.store.unreadLocked(conv.ID, profileID)
		convs = append(convs, copied)
	}
	return convs, nil
}

type fakeMessageRepo struct {
	store *fakeChatStore
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.msgs = append(r.store.msgs, msg)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, forProfile uuid.UUID) ([]domain.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var msgs []domain.Message
	for _, m := range r.store.msgs {
		if m.ConversationID != conversationID {
			continue
		}
		copied := *m
		copied.ReadByMe = r.store.reads[m.ID][forProfile]
		msgs = append(msgs, copied)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, messageID string, profileID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.markReadLocked(messageID, profileID)
	return nil
}

func (r *fakeMessageRepo) MarkConversationRead(_ context.Context, conversationID, profileID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var marked int64
	for _, m := range r.store.msgs {
		if m.ConversationID != conversationID || m.SenderID == profileID {
			continue
		}
		if r.store.markReadLocked(m.ID, profileID) {
			marked++
		}
	}
	return marked, nil
}

func (r *fakeMessageRepo) UnreadCount(_ context.Context, conversationID, profileID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.unreadLocked(conversationID, profileID), nil
}

func (r *fakeMessageRepo) TotalUnreadCount(_ context.Context, profileID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := 0
	for _, conv := range r.store.convs {
		if conv.HasParticipant(profileID) {
			total += r.store.unreadLocked(conv.ID, profileID)
		}
	}
	return total, nil
}

func (s *fakeChatStore) markReadLocked(messageID string, profileID uuid.UUID) bool {
	readers := s.reads[messageID]
	if readers == nil {
		readers = make(map[uuid.UUID]bool)
		s.reads[messageID] = readers
	}
	if readers[profileID] {
		return false
	}
	readers[profileID] = true
	return true
}

func (s *fakeChatStore) unreadLocked(conversationID, profileID uuid.UUID) int {
	count := 0
	for _, m := range s.msgs {
		if m.ConversationID == conversationID && m.SenderID != profileID && !s.reads[m.ID][profileID] {
			count++
		}
	}
	return count
}

// recordNotifier captures match notification dispatches.
type recordNotifier struct {
	mu    sync.Mutex
	calls []pair
}

func (n *recordNotifier) NotifyMatch(_ context.Context, profileID, otherProfileID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, pair{profileID, otherProfileID})
}

// recordBroadcaster captures message fan-outs in order.
type recordBroadcaster struct {
	mu   sync.Mutex
	msgs []*domain.Message
}

func (b *recordBroadcaster) BroadcastMessage(msg *domain.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
}
