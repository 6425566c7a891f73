package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TokenDenylist remembers logged-out token IDs until the token would have
// expired anyway.
type TokenDenylist struct {
	cache *cache.Cache
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{
		cache: cache.New(24*time.Hour, 10*time.Minute),
	}
}

func (d *TokenDenylist) Revoke(jti string, until time.Time) {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return
	}
	d.cache.Set(jti, struct{}{}, ttl)
}

func (d *TokenDenylist) IsRevoked(jti string) bool {
	_, found := d.cache.Get(jti)
	return found
}
