package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks token identifiers invalidated before their
// natural expiry. Entries only need to live for the token's remaining
// TTL; expired tokens are rejected by signature validation regardless.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevocationStore is the in-process default. State is lost on
// restart, which is acceptable because every entry would have expired
// with its token anyway.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}

func (s *MemoryRevocationStore) sweepLocked() {
	now := time.Now()
	for jti, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, jti)
		}
	}
}

// RedisRevocationStore keys revoked token ids in Redis with a TTL equal
// to the token's remaining lifetime, so entries garbage-collect
// themselves. Use it when revocation must survive restarts or be shared
// between replicas.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revocationKey(jti string) string {
	return "revoked_token:" + jti
}
