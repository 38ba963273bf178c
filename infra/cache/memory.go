// Package cache provides the in-memory TTL store backing the cached
// withdrawal-limits provider.
package cache

import (
	"sync"
	"time"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

type entry struct {
	limits    withdrawal.WithdrawalLimits
	expiresAt time.Time
}

// Memory is a process-local TTL cache for withdrawal policy limits.
// Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory creates an empty cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns the cached limits for key, reporting whether a live
// (unexpired) entry was found.
func (c *Memory) Get(key string) (withdrawal.WithdrawalLimits, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return withdrawal.WithdrawalLimits{}, false
	}
	return e.limits, true
}

// Set stores limits under key for the given TTL.
func (c *Memory) Set(key string, l withdrawal.WithdrawalLimits, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{limits: l, expiresAt: time.Now().Add(ttl)}
}

// Delete drops the entry for key.
func (c *Memory) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
