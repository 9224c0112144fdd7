/*
Package dnscache wraps a dial function with an LRU cache of resolved
addresses, so a crawl hitting the same handful of hosts thousands of times
pays for one DNS lookup instead of one per request.
*/
package dnscache

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

//TODO:
//  - consider not caching failures at all; the more likely usecase is a
//    few retries (where we don't want caching) followed by giving up on
//    the domain entirely

// Dial wraps dial with a cache of up to maxEntries resolved addresses, each
// valid for ttl. Failed lookups are cached for the same ttl, so a dead host
// isn't re-resolved on every retry. If dial is nil, net.Dial is used.
func Dial(dial func(network, addr string) (net.Conn, error), maxEntries int, ttl time.Duration) (func(network, addr string) (net.Conn, error), error) {
	if dial == nil {
		dial = net.Dial
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	r := &resolverCache{dial: dial, cache: cache, ttl: ttl}
	return r.dialCached, nil
}

// resolverCache holds one dial function's worth of cached resolutions.
type resolverCache struct {
	dial  func(network, address string) (net.Conn, error)
	cache *lru.Cache
	mu    sync.RWMutex
	ttl   time.Duration

	hits   uint64
	misses uint64
}

type resolution struct {
	addr     string
	failed   bool
	err      error
	cachedAt time.Time
}

func (r *resolverCache) dialCached(network, addr string) (net.Conn, error) {
	key := network + addr
	r.mu.RLock()
	if entry, ok := r.cache.Get(key); ok {
		res := entry.(resolution)
		if time.Since(res.cachedAt) > r.ttl {
			r.mu.RUnlock()
			return r.resolveAndCache(network, addr)
		}
		atomic.AddUint64(&r.hits, 1)
		if res.failed {
			err := res.err
			r.mu.RUnlock()
			return nil, err
		}
		resolved := res.addr
		r.mu.RUnlock()
		return r.dial(network, resolved)
	}
	r.mu.RUnlock()
	atomic.AddUint64(&r.misses, 1)
	return r.resolveAndCache(network, addr)
}

// resolveAndCache dials addr fresh and records the outcome, overwriting any
// entry that may have previously existed for this network:addr pair.
func (r *resolverCache) resolveAndCache(network, addr string) (net.Conn, error) {
	key := network + addr
	conn, err := r.dial(network, addr)
	cachedAt := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.cache.Add(key, resolution{failed: true, err: err, cachedAt: cachedAt})
		logging.Debug("dns resolution failed", "addr", addr, "err", err)
		return nil, err
	}
	r.cache.Add(key, resolution{addr: conn.RemoteAddr().String(), cachedAt: cachedAt})
	return conn, nil
}
