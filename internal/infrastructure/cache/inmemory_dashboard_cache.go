package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cashboard/backend/internal/application/dashboard"
	"github.com/cashboard/backend/internal/domain/report"
)

type cachedDashboard struct {
	result    *report.Dashboard
	expiresAt time.Time
}

// InMemoryDashboardCache implements dashboard.ResultCache using an in-memory
// map. Suitable for single-instance deployments and testing.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	results map[string]cachedDashboard
}

// NewInMemoryDashboardCache creates a new in-memory dashboard cache
func NewInMemoryDashboardCache(ttl time.Duration) *InMemoryDashboardCache {
	return &InMemoryDashboardCache{
		ttl:     ttl,
		results: make(map[string]cachedDashboard),
	}
}

// GetDashboard implements dashboard.ResultCache
func (c *InMemoryDashboardCache) GetDashboard(_ context.Context, key string) (*report.Dashboard, bool) {
	c.mu.RLock()
	cached, exists := c.results[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(cached.expiresAt) {
		return nil, false
	}
	return cached.result, true
}

// SetDashboard implements dashboard.ResultCache
func (c *InMemoryDashboardCache) SetDashboard(_ context.Context, key string, d *report.Dashboard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Lazy expiry sweep; the dashboard key space is tiny so a full pass is
	// cheaper than a background goroutine.
	now := time.Now()
	for k, cached := range c.results {
		if now.After(cached.expiresAt) {
			delete(c.results, k)
		}
	}

	c.results[key] = cachedDashboard{
		result:    d,
		expiresAt: now.Add(c.ttl),
	}
}

// Size returns the number of cached results (for testing/monitoring)
func (c *InMemoryDashboardCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

var _ dashboard.ResultCache = (*InMemoryDashboardCache)(nil)
