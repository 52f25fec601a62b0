package draftdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier/internal/order"
)

// RedisStore keeps the session's draft as a JSON value under a single key.
type RedisStore struct {
	client    RedisClient
	keyPrefix string
	ttl       time.Duration
}

// RedisClient is the minimal client surface used by RedisStore.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisStore constructs a Redis-backed draft store. A zero ttl keeps
// drafts until completed or cancelled.
func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "draft:",
		ttl:       ttl,
	}
}

// Put overwrites the session's slot with the draft (last writer wins).
func (s *RedisStore) Put(ctx context.Context, d order.Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keyPrefix+d.SessionID, data, s.ttl).Err()
}

// Get returns the session's draft. An absent key or a value that no longer
// parses both report order.ErrNoDraft; a corrupt record must never crash the
// caller.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (order.Draft, error) {
	if err := ctx.Err(); err != nil {
		return order.Draft{}, err
	}
	raw, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return order.Draft{}, order.ErrNoDraft
	}
	if err != nil {
		return order.Draft{}, err
	}

	var d order.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return order.Draft{}, order.ErrNoDraft
	}
	if d.SessionID == "" || d.Phase == "" {
		return order.Draft{}, order.ErrNoDraft
	}
	return d, nil
}

// Clear deletes the session's slot. Clearing an empty slot is a no-op.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, s.keyPrefix+sessionID).Err()
}
