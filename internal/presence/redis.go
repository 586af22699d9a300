package presence

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisStore keeps presence flags in Redis so every server process sees the
// same liveness view. Keys carry their TTL; reads of expired keys are plain
// misses.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// ConnectRedis dials Redis and verifies the connection.
func ConnectRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func (s *RedisStore) MarkOnline(ctx context.Context, profileID uuid.UUID) error {
	return s.rdb.Set(ctx, onlineKey(profileID), "1", OnlineTTL).Err()
}

func (s *RedisStore) IsOnline(ctx context.Context, profileID uuid.UUID) (bool, error) {
	return s.exists(ctx, onlineKey(profileID))
}

func (s *RedisStore) SetTyping(ctx context.Context, conversationID, profileID uuid.UUID) error {
	return s.rdb.Set(ctx, typingKey(conversationID, profileID), "1", TypingTTL).Err()
}

func (s *RedisStore) IsTyping(ctx context.Context, conversationID, profileID uuid.UUID) (bool, error) {
	return s.exists(ctx, typingKey(conversationID, profileID))
}

func (s *RedisStore) exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
