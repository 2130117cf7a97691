package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/trackerhq/project-tracker/internal/domain"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps browser session records in Redis. SET replaces a
// key atomically, so a concurrent reader observes either the old record or
// the new one, never a partial write. Expiry is delegated to the key TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds a store writing records with the given TTL.
func NewRedisSessionStore(r *Redis, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: r.Client, ttl: ttl}
}

// Get returns the session record, or nil when the key is absent or expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var record domain.SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Put stores or replaces the session record.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, record *domain.SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err()
}

// Delete removes the session record, if any.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
