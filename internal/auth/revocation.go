package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records logged-out tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemoryRevocationStore keeps revocations in process. A janitor goroutine
// drops entries whose token has expired.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ RevocationStore = (*MemoryRevocationStore)(nil)

// NewMemoryRevocationStore starts a store swept every interval.
func NewMemoryRevocationStore(interval time.Duration) *MemoryRevocationStore {
	if interval <= 0 {
		interval = time.Minute
	}
	s := &MemoryRevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.janitor(interval)
	return s
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[tokenDigest(token)] = expiresAt
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[tokenDigest(token)]
	return ok, nil
}

// Len reports how many revocations are currently held.
func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor. It is safe to call more than once.
func (s *MemoryRevocationStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

func (s *MemoryRevocationStore) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryRevocationStore) sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for digest, expiresAt := range s.entries {
		if !expiresAt.After(now) {
			delete(s.entries, digest)
			removed++
		}
	}
	return removed
}

const revocationKeyPrefix = "revoked:"

// RevocationKey returns the Redis key holding a token's revocation marker.
func RevocationKey(token string) string {
	return revocationKeyPrefix + tokenDigest(token)
}

// RedisRevocationStore shares revocations between instances. Each marker
// expires together with the token it revokes.
type RedisRevocationStore struct {
	client redis.UniversalClient
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRedisRevocationStore wraps an existing client.
func NewRedisRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, RevocationKey(token), 1, ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, RevocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
