// Package cache holds validated dashboard results keyed by request
// fingerprint. Entries expire after a TTL and are reclaimed lazily on read;
// there is no size bound and no background sweep, which is an accepted
// capacity risk for long-running deployments.
package cache

// #region imports
import (
	"sync"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region types

// DefaultTTL is how long a stored result stays servable.
const DefaultTTL = time.Hour

type entry struct {
	value     *dashboard.DashboardResult
	expiresAt time.Time
}

// ResultCache is a fingerprint-keyed, time-bounded result store.
// Safe for concurrent use. Concurrent misses for the same key may both
// dispatch and both write; last writer wins (no single-flight guarantee).
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// #endregion types

// #region constructors

// New creates a cache on the real clock.
func New() *ResultCache {
	return NewWithClock(time.Now)
}

// NewWithClock creates a cache with an injected clock for test isolation.
func NewWithClock(now func() time.Time) *ResultCache {
	return &ResultCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// #endregion constructors

// #region get

// Get returns the cached result for key, or (nil, false) when the key is
// unknown or expired. An expired entry is deleted as a side effect of the
// read.
func (c *ResultCache) Get(key string) (*dashboard.DashboardResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// #endregion get

// #region set

// Set stores value under key with the default TTL.
func (c *ResultCache) Set(key string, value *dashboard.DashboardResult) {
	c.SetTTL(key, value, DefaultTTL)
}

// SetTTL stores value under key with an explicit TTL. Overwriting an
// existing key resets its TTL clock.
func (c *ResultCache) SetTTL(key string, value *dashboard.DashboardResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// #endregion set

// #region len

// Len reports the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// #endregion len
