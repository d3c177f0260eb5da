package exchangerate

import (
	"sync"
	"time"
)

// DefaultTTL is how long a fetched rate stays fresh.
const DefaultTTL = 24 * time.Hour

// Cache holds the last successfully fetched rate.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	entry *Rate
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{ttl: ttl}
}

// Get returns the cached rate if it was fetched less than ttl before now.
func (c *Cache) Get(now time.Time) (Rate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || now.Sub(c.entry.FetchedAt) >= c.ttl {
		return Rate{}, false
	}

	return *c.entry, true
}

// Last returns the cached rate regardless of its age.
func (c *Cache) Last() (Rate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return Rate{}, false
	}

	return *c.entry, true
}

func (c *Cache) Put(r Rate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = &r
}
