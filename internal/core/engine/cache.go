package engine

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const cacheShardCount = 16

// ComponentCache is the process-wide, kind-keyed index of every live
// component across every scene. It exists so engine-wide operations (fan a
// physics contact out to every collider, snapshot all behaviours for the
// inspector) never walk every hierarchy.
//
// The cache is its own synchronization domain, sharded by kind hash.
// Registrations arrive from inside arbitrary objects' add/remove calls;
// those calls have already released the object's own lock, so the two
// domains are never held together.
type ComponentCache struct {
	shards [cacheShardCount]cacheShard
}

type cacheShard struct {
	mu     sync.RWMutex
	byKind map[Kind][]Component
}

func NewComponentCache() *ComponentCache {
	c := &ComponentCache{}
	for i := range c.shards {
		c.shards[i].byKind = make(map[Kind][]Component)
	}
	return c
}

func (c *ComponentCache) shard(kind Kind) *cacheShard {
	return &c.shards[xxhash.Sum64String(string(kind))%cacheShardCount]
}

// register appends the component to its kind's bucket. Strict pairing with
// unregister on every removal path is the only thing keeping the cache free
// of stale entries; there is no independent garbage collection here.
func (c *ComponentCache) register(comp Component) {
	s := c.shard(comp.Kind())
	s.mu.Lock()
	s.byKind[comp.Kind()] = append(s.byKind[comp.Kind()], comp)
	s.mu.Unlock()
}

// unregister removes the specific instance (identity match, not value match).
func (c *ComponentCache) unregister(comp Component) {
	s := c.shard(comp.Kind())
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.byKind[comp.Kind()]
	for i, have := range bucket {
		if have == comp {
			s.byKind[comp.Kind()] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// QueryKind returns all live components of the exact concrete kind, in
// registration order. Absent kinds yield an empty result.
func (c *ComponentCache) QueryKind(kind Kind) []Component {
	s := c.shard(kind)
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.byKind[kind]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]Component, len(bucket))
	copy(out, bucket)
	return out
}

// Len reports the total number of registered components.
func (c *ComponentCache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for _, bucket := range s.byKind {
			n += len(bucket)
		}
		s.mu.RUnlock()
	}
	return n
}

// Kinds returns every kind currently holding at least one live component.
func (c *ComponentCache) Kinds() []Kind {
	var out []Kind
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for kind, bucket := range s.byKind {
			if len(bucket) > 0 {
				out = append(out, kind)
			}
		}
		s.mu.RUnlock()
	}
	return out
}

// Query returns every registered component assignable to T, scanning all
// shards. This is the polymorphic flavor: querying an interface kind
// matches every concrete kind implementing it.
func Query[T Component](c *ComponentCache) []T {
	var out []T
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for _, bucket := range s.byKind {
			for _, comp := range bucket {
				if t, ok := comp.(T); ok {
					out = append(out, t)
				}
			}
		}
		s.mu.RUnlock()
	}
	return out
}

// The process-wide cache instance. Tests reset it through ResetCache; the
// accessor is deliberately narrow so nothing else can swap it mid-run.
var (
	cacheMu     sync.RWMutex
	globalCache = NewComponentCache()
)

// Cache returns the process-wide component cache.
func Cache() *ComponentCache {
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	return globalCache
}

// ResetCache replaces the process-wide cache with an empty one. Intended
// for test teardown.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	globalCache = NewComponentCache()
}
