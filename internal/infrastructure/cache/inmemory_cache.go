package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared"
)

// entry holds an encoded value with its expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryCache implements shared.Cache with a map. Values are JSON-encoded
// like in Redis so callers never share memory with the cache.
// State is local to the process.
type InMemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCache creates a new in-memory cache
// It starts a background goroutine to clean up expired entries
func NewInMemoryCache() *InMemoryCache {
	c := &InMemoryCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get decodes the value under key into dest
func (c *InMemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key until ttl elapses
func (c *InMemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: raw, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes keys
func (c *InMemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries, expired ones included
func (c *InMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ shared.Cache = (*InMemoryCache)(nil)
