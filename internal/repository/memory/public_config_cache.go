package memory

import (
	"time"

	"portfolio-ai-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

const publicConfigKey = "public_config"

// PublicConfigCache holds the widget configuration served to anonymous visitors
type PublicConfigCache struct {
	cache *cache.Cache
}

func NewPublicConfigCache(ttl time.Duration) *PublicConfigCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PublicConfigCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *PublicConfigCache) Save(config *dto.PublicChatConfigResponse) {
	r.cache.Set(publicConfigKey, config, cache.DefaultExpiration)
}

func (r *PublicConfigCache) Get() (*dto.PublicChatConfigResponse, bool) {
	if x, found := r.cache.Get(publicConfigKey); found {
		return x.(*dto.PublicChatConfigResponse), true
	}
	return nil, false
}

// Invalidate drops the cached value; called after every admin update
func (r *PublicConfigCache) Invalidate() {
	r.cache.Delete(publicConfigKey)
}
