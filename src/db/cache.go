package db

import (
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Quote lookups hit the exchange's public API, so responses are cached with
// a short TTL. Keys are tracked separately so the whole quote cache can be
// dropped at once.
var (
	Cache          *ristretto.Cache
	QuoteCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

// QuoteTTL is how long a realtime quote stays served from cache.
const QuoteTTL = 30 * time.Second

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SetQuoteCache(cacheKey string, value interface{}) {
	QuoteCacheKeys.Lock()
	QuoteCacheKeys.m[cacheKey] = struct{}{}
	QuoteCacheKeys.Unlock()
	Cache.SetWithTTL(cacheKey, value, 1, QuoteTTL)
}

func GetQuoteCache(cacheKey string) (interface{}, bool) {
	return Cache.Get(cacheKey)
}

func ClearAllQuoteCaches() {
	QuoteCacheKeys.Lock()
	for key := range QuoteCacheKeys.m {
		Cache.Del(key)
	}
	QuoteCacheKeys.m = make(map[string]struct{})
	QuoteCacheKeys.Unlock()
}
