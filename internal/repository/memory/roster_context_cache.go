package memory

import (
	"sync"
	"time"

	"fantasy-hoops-be/pkg/chat"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	rosterContextTTL = 5 * time.Minute
	// must outlive any roster read that started before an eviction
	generationTTL = 30 * time.Minute
)

// RosterContextCache holds the roster section used by chat, keyed by user.
// Entries are evicted when the roster changes. Every eviction bumps the
// user's generation so a read that started earlier cannot store its result.
type RosterContextCache struct {
	mu          sync.Mutex
	entries     *cache.Cache
	generations *cache.Cache
}

func NewRosterContextCache() *RosterContextCache {
	return &RosterContextCache{
		entries:     cache.New(rosterContextTTL, 10*time.Minute),
		generations: cache.New(generationTTL, time.Hour),
	}
}

// Generation is taken before loading the roster and handed back to
// SaveIfCurrent.
func (c *RosterContextCache) Generation(userID uuid.UUID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation(userID.String())
}

func (c *RosterContextCache) generation(key string) uint64 {
	if x, found := c.generations.Get(key); found {
		return x.(uint64)
	}
	return 0
}

// SaveIfCurrent stores entries unless the user's roster changed since gen
// was taken. It reports whether the entries were stored.
func (c *RosterContextCache) SaveIfCurrent(userID uuid.UUID, gen uint64, entries []chat.RosterEntry) bool {
	key := userID.String()
	stored := make([]chat.RosterEntry, len(entries))
	copy(stored, entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation(key) != gen {
		return false
	}
	c.entries.Set(key, stored, cache.DefaultExpiration)
	return true
}

func (c *RosterContextCache) Get(userID uuid.UUID) ([]chat.RosterEntry, bool) {
	if x, found := c.entries.Get(userID.String()); found {
		return x.([]chat.RosterEntry), true
	}
	return nil, false
}

func (c *RosterContextCache) Delete(userID uuid.UUID) {
	key := userID.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Delete(key)
	c.generations.Set(key, c.generation(key)+1, cache.DefaultExpiration)
}
