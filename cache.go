package cachekit

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/venkatsvpr/cachekit/cachelist"
	"github.com/venkatsvpr/cachekit/lptable"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[V any] func(key string, value V)

// Option customizes a Cache at construction.
type Option func(*options) error

type options struct {
	locker        RWLocker
	maxLoadFactor float64
	hasher        lptable.Hasher
}

// WithLocker sets the lock taken around every operation. The default is
// NoOpRWLocker; pass a *sync.RWMutex to share the cache between goroutines.
func WithLocker(l RWLocker) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("locker must not be nil")
		}
		o.locker = l
		return nil
	}
}

// WithSynchronization is WithLocker(&sync.RWMutex{}).
func WithSynchronization() Option {
	return WithLocker(&sync.RWMutex{})
}

// WithMaxLoadFactor caps the fraction of index slots in use. Lower values
// shorten probe runs at the cost of holding fewer keys. The default is 1.
func WithMaxLoadFactor(f float64) Option {
	return func(o *options) error {
		o.maxLoadFactor = f
		return nil
	}
}

// WithHasher replaces the index's default string hash.
func WithHasher(h lptable.Hasher) Option {
	return func(o *options) error {
		o.hasher = h
		return nil
	}
}

// Cache is a fixed size cache that evicts the least used key. Keys are
// indexed by an lptable.Table and ranked by a cachelist.List that moves a key
// forward every time Get finds it. A new key enters the ranking at the tail,
// so it is the first eviction candidate until it is read.
type Cache[V any] struct {
	index   *lptable.Table[V]
	order   *cachelist.List[string]
	onEvict EvictCallback[V]
	lock    RWLocker
	fills   singleflight.Group
}

// New creates a cache of the given size.
func New[V any](size int, opts ...Option) (*Cache[V], error) {
	return NewWithEvict[V](size, nil, opts...)
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback. The callback runs after the lock is released.
func NewWithEvict[V any](size int, onEvicted EvictCallback[V], opts ...Option) (*Cache[V], error) {
	if size <= 0 {
		return nil, errors.New("must provide a positive size")
	}
	o := options{locker: NoOpRWLocker{}, maxLoadFactor: 1}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("cachekit: %w", err)
		}
	}

	var indexOpts []lptable.Option
	if o.hasher != nil {
		indexOpts = append(indexOpts, lptable.WithHasher(o.hasher))
	}
	index, err := lptable.New[V](size, o.maxLoadFactor, indexOpts...)
	if err != nil {
		return nil, err
	}

	return &Cache[V]{
		index:   index,
		order:   cachelist.New[string](),
		onEvict: onEvicted,
		lock:    o.locker,
	}, nil
}

type eviction[V any] struct {
	key   string
	value V
}

func (c *Cache[V]) notify(ev []eviction[V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range ev {
		c.onEvict(e.key, e.value)
	}
}

// Add adds a value to the cache. Returns true if an eviction occurred.
// Overwriting an existing key does not change its rank.
func (c *Cache[V]) Add(key string, value V) (evicted bool) {
	var ev []eviction[V]
	c.lock.Lock()
	ev = c.add(key, value)
	c.lock.Unlock()
	c.notify(ev)
	return len(ev) > 0
}

func (c *Cache[V]) add(key string, value V) []eviction[V] {
	if c.index.Contains(key) {
		c.index.Update(key, value)
		return nil
	}
	var ev []eviction[V]
	for !c.index.Update(key, value) {
		k, v, ok := c.removeLeastUsed()
		if !ok {
			// An empty index always admits; this is unreachable.
			panic("cachekit: index rejected a key with nothing left to evict")
		}
		ev = append(ev, eviction[V]{key: k, value: v})
	}
	c.order.Insert(key)
	return ev
}

// Get looks up a key's value from the cache and counts the access.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	value, ok = c.index.Find(key)
	if ok {
		c.order.Search(key)
	}
	return value, ok
}

// Peek returns the key value (or undefined if not found) without counting
// the access.
func (c *Cache[V]) Peek(key string) (value V, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.index.Find(key)
}

// Contains checks if a key is in the cache without counting the access.
func (c *Cache[V]) Contains(key string) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.index.Contains(key)
}

// AccessCount returns how many times Get has found key since it was added.
func (c *Cache[V]) AccessCount(key string) (count int, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	for it := c.order.CBegin(); !it.Equal(c.order.CEnd()); it = it.Next() {
		if it.Value() == key {
			return it.AccessCount(), true
		}
	}
	return 0, false
}

// Remove removes the provided key from the cache.
func (c *Cache[V]) Remove(key string) (present bool) {
	var ev []eviction[V]
	c.lock.Lock()
	if v, ok := c.index.Find(key); ok {
		c.index.Remove(key)
		c.eraseKey(key)
		ev = append(ev, eviction[V]{key: key, value: v})
	}
	c.lock.Unlock()
	c.notify(ev)
	return len(ev) > 0
}

func (c *Cache[V]) eraseKey(key string) {
	for it := c.order.Begin(); !it.Equal(c.order.End()); it = it.Next() {
		if it.Value() == key {
			c.order.Erase(it)
			return
		}
	}
}

// RemoveLeastUsed removes the key at the tail of the ranking.
func (c *Cache[V]) RemoveLeastUsed() (key string, value V, ok bool) {
	c.lock.Lock()
	key, value, ok = c.removeLeastUsed()
	c.lock.Unlock()
	if ok {
		c.notify([]eviction[V]{{key: key, value: value}})
	}
	return
}

func (c *Cache[V]) removeLeastUsed() (key string, value V, ok bool) {
	if c.order.Empty() {
		return
	}
	last := c.order.Back()
	key = last.Value()
	value, _ = c.index.Find(key)
	c.index.Remove(key)
	c.order.Erase(last)
	return key, value, true
}

// GetLeastUsed returns the key at the tail of the ranking without removing
// it or counting an access.
func (c *Cache[V]) GetLeastUsed() (key string, value V, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.order.Empty() {
		return
	}
	key = c.order.Back().Value()
	value, _ = c.index.Find(key)
	return key, value, true
}

// Keys returns a slice of the keys in the cache, from most to least used.
func (c *Cache[V]) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.order.Values()
}

// Len returns the number of items in the cache.
func (c *Cache[V]) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.index.Len()
}

// Cap returns the number of index slots.
func (c *Cache[V]) Cap() int {
	return c.index.Cap()
}

// Purge is used to completely clear the cache.
func (c *Cache[V]) Purge() {
	var ev []eviction[V]
	c.lock.Lock()
	if c.onEvict != nil {
		for _, k := range c.order.Values() {
			v, _ := c.index.Find(k)
			ev = append(ev, eviction[V]{key: k, value: v})
		}
	}
	c.index.Purge()
	c.order.Clear()
	c.lock.Unlock()
	c.notify(ev)
}
