package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	pkgredis "github.com/ozanakin/carsi-storefront/pkg/redis"
)

// StagingStore holds the in-progress checkout draft per session. A missing
// entry reads as (nil, nil).
type StagingStore interface {
	Load(ctx context.Context, sessionKey string) (*Staging, error)
	Save(ctx context.Context, staging *Staging) error
	Clear(ctx context.Context, sessionKey string) error
}

type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisStagingStore keeps staging drafts in Redis under a session-scoped key
// with a TTL, so abandoned checkouts expire on their own.
type RedisStagingStore struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisStagingStore builds the store.
func NewRedisStagingStore(client redisCommands, ttl time.Duration) *RedisStagingStore {
	return &RedisStagingStore{client: client, ttl: ttl}
}

func (s *RedisStagingStore) Load(ctx context.Context, sessionKey string) (*Staging, error) {
	raw, err := s.client.Get(ctx, pkgredis.StagingKey(sessionKey))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout staging")
	}

	var staging Staging
	if err := json.Unmarshal([]byte(raw), &staging); err != nil {
		// Corrupt entry: drop it and restart the flow.
		_ = s.client.Del(ctx, pkgredis.StagingKey(sessionKey))
		return nil, nil
	}
	return &staging, nil
}

func (s *RedisStagingStore) Save(ctx context.Context, staging *Staging) error {
	encoded, err := json.Marshal(staging)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout staging")
	}
	if err := s.client.Set(ctx, pkgredis.StagingKey(staging.SessionKey), string(encoded), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout staging")
	}
	return nil
}

func (s *RedisStagingStore) Clear(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, pkgredis.StagingKey(sessionKey)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout staging")
	}
	return nil
}

// MemoryStagingStore is an in-process fallback used when Redis is not
// configured, and by tests.
type MemoryStagingStore struct {
	mu      sync.Mutex
	entries map[string]*Staging
}

// NewMemoryStagingStore builds the store.
func NewMemoryStagingStore() *MemoryStagingStore {
	return &MemoryStagingStore{entries: map[string]*Staging{}}
}

func (s *MemoryStagingStore) Load(ctx context.Context, sessionKey string) (*Staging, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staging, ok := s.entries[sessionKey]
	if !ok {
		return nil, nil
	}
	clone := *staging
	return &clone, nil
}

func (s *MemoryStagingStore) Save(ctx context.Context, staging *Staging) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *staging
	s.entries[staging.SessionKey] = &clone
	return nil
}

func (s *MemoryStagingStore) Clear(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionKey)
	return nil
}
