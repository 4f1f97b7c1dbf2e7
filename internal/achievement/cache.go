package achievement

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

// unlockCache remembers (user, achievement) pairs known to be unlocked so
// repeated crossing evaluations skip the guarded insert. Only positive
// results are cached; a miss falls through to the store, which is the
// authority.
type unlockCache struct {
	lru *expirable.LRU[string, struct{}]
}

func newUnlockCache(size int, ttl time.Duration) *unlockCache {
	return &unlockCache{
		lru: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func cacheKey(userID string, id domain.AchievementID) string {
	return userID + ":" + string(id)
}

// Has reports whether the pair is known unlocked
func (c *unlockCache) Has(userID string, id domain.AchievementID) bool {
	_, found := c.lru.Get(cacheKey(userID, id))
	return found
}

// Mark records the pair as unlocked
func (c *unlockCache) Mark(userID string, id domain.AchievementID) {
	c.lru.Add(cacheKey(userID, id), struct{}{})
}

// Forget drops the pair, used when pro_status is revoked
func (c *unlockCache) Forget(userID string, id domain.AchievementID) {
	c.lru.Remove(cacheKey(userID, id))
}
