package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations tracks JWTs that must be refused before they expire.
// Logout revokes one token by its JTI. A password change, a deactivation or
// an admin reset revokes every token the user holds at that moment.
type Revocations interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	TokenRevoked(ctx context.Context, jti string) (bool, error)
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	// IssuedBeforeRevocation reports whether a token issued at issuedAt
	// predates the user's last RevokeUser.
	IssuedBeforeRevocation(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const revocationNamespace = "rental:revoked:"

// RedisRevocations keeps revocations in Redis so every replica sees them.
// Keys expire with the tokens they cover.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func tokenKey(jti string) string     { return revocationNamespace + "jti:" + jti }
func userCutoffKey(id string) string { return revocationNamespace + "user:" + id }

func (r *RedisRevocations) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, tokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RedisRevocations) TokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("lookup revoked token: %w", err)
	}
	return n == 1, nil
}

// RevokeUser stores the revocation second. The key lives as long as the
// longest token that could have been issued before it.
func (r *RedisRevocations) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(time.Now().Unix(), 10)
	if err := r.client.Set(ctx, userCutoffKey(userID), cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (r *RedisRevocations) IssuedBeforeRevocation(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := r.client.Get(ctx, userCutoffKey(userID)).Result()
	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("lookup user revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("corrupt revocation cutoff for user %s: %w", userID, err)
	}
	// iat has second precision; a token minted in the revocation second survives
	return issuedAt.Unix() < cutoff, nil
}

// MemoryRevocations is the single-process fallback used when Redis is off.
type MemoryRevocations struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> expiry
	cutoffs map[string]int64     // user id -> unix second of revocation
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]int64),
		now:     time.Now,
	}
}

func (m *MemoryRevocations) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[jti] = m.now().Add(ttl)
	return nil
}

func (m *MemoryRevocations) TokenRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.tokens[jti]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiry) {
		delete(m.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser ignores ttl; cutoffs are kept for the life of the process.
func (m *MemoryRevocations) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs[userID] = m.now().Unix()
	return nil
}

func (m *MemoryRevocations) IssuedBeforeRevocation(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff, ok := m.cutoffs[userID]
	return ok && issuedAt.Unix() < cutoff, nil
}

var (
	_ Revocations = (*RedisRevocations)(nil)
	_ Revocations = (*MemoryRevocations)(nil)
)
