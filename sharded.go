package cachekit

import (
	"errors"
	"hash/maphash"
)

// Sharded spreads keys over several independently locked caches so that
// goroutines working on different keys rarely contend. Ranking and eviction
// happen per shard.
type Sharded[V any] struct {
	shards []*Cache[V]
	seed   maphash.Seed
}

// NewSharded creates a sharded cache holding size keys in total over the
// given number of shards. Shards beyond size are dropped; the first shard
// takes the remainder of an uneven split. Every shard gets its own
// sync.RWMutex, applied after opts.
func NewSharded[V any](size, shards int, opts ...Option) (*Sharded[V], error) {
	if shards < 1 || size < 1 {
		return nil, errors.New("size and shard count must be positive")
	}
	if size < shards {
		shards = size
	}

	opts = append(opts[:len(opts):len(opts)], WithSynchronization())

	s := &Sharded[V]{
		shards: make([]*Cache[V], shards),
		seed:   maphash.MakeSeed(),
	}
	for i := range s.shards {
		n := size / shards
		if i == 0 {
			n += size % shards
		}
		c, err := New[V](n, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = c
	}
	return s, nil
}

func (s *Sharded[V]) shard(key string) *Cache[V] {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[maphash.String(s.seed, key)%uint64(len(s.shards))]
}

// Add adds a value to the key's shard. Returns true if an eviction occurred.
func (s *Sharded[V]) Add(key string, value V) (evicted bool) {
	return s.shard(key).Add(key, value)
}

// Get looks up a key's value and counts the access.
func (s *Sharded[V]) Get(key string) (value V, ok bool) {
	return s.shard(key).Get(key)
}

// GetOrFill is Cache.GetOrFill on the key's shard.
func (s *Sharded[V]) GetOrFill(key string, fill FillFunc[V]) (V, error) {
	return s.shard(key).GetOrFill(key, fill)
}

// Peek returns the key value without counting the access.
func (s *Sharded[V]) Peek(key string) (value V, ok bool) {
	return s.shard(key).Peek(key)
}

// Contains checks if a key is in the cache without counting the access.
func (s *Sharded[V]) Contains(key string) bool {
	return s.shard(key).Contains(key)
}

// ContainsOrAdd checks if a key is in the cache without counting the access,
// and if not, adds the value. Returns whether found and whether an eviction
// occurred. The check and the add are not atomic.
func (s *Sharded[V]) ContainsOrAdd(key string, value V) (ok, evicted bool) {
	c := s.shard(key)
	if c.Contains(key) {
		return true, false
	}
	return false, c.Add(key, value)
}

// Remove removes the provided key from the cache.
func (s *Sharded[V]) Remove(key string) (present bool) {
	return s.shard(key).Remove(key)
}

// Keys returns the keys of every shard, each shard most used first.
func (s *Sharded[V]) Keys() (ret []string) {
	for _, c := range s.shards {
		ret = append(ret, c.Keys()...)
	}
	return
}

// Len returns the number of items in the cache.
func (s *Sharded[V]) Len() (ret int) {
	for _, c := range s.shards {
		ret += c.Len()
	}
	return
}

// Cap returns the total index capacity over all shards.
func (s *Sharded[V]) Cap() (ret int) {
	for _, c := range s.shards {
		ret += c.Cap()
	}
	return
}

// Shards returns the number of shards.
func (s *Sharded[V]) Shards() int {
	return len(s.shards)
}

// Purge is used to completely clear the cache.
func (s *Sharded[V]) Purge() {
	for _, c := range s.shards {
		c.Purge()
	}
}
