// Package lptable provides a fixed-capacity hash index keyed by string,
// using open addressing with linear probing.
//
// Deletion uses backward shifting instead of tombstones: after a slot is
// emptied, later entries of the same probe run are moved back into the gap,
// so a lookup may stop at the first empty slot it meets.
//
// The index never grows. A maximum load factor caps admission of new keys;
// once it is reached Update reports false even though empty slots remain.
package lptable

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math"
)

var (
	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("lptable: capacity must be positive")
	// ErrInvalidLoadFactor is returned by New for a load factor outside (0, 1].
	ErrInvalidLoadFactor = errors.New("lptable: max load factor must be in (0, 1]")
)

// Hasher maps a key to a 64 bit hash.
type Hasher func(key string) uint64

// Option customizes a Table at construction.
type Option func(*options)

type options struct {
	hash Hasher
}

// WithHasher replaces the default seeded maphash string hash.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hash = h
	}
}

type slot[V any] struct {
	used  bool
	key   string
	value V
}

// Table is a linear probing hash index. It is not safe for concurrent use.
type Table[V any] struct {
	slots         []slot[V]
	count         int
	maxLoadFactor float64
	hash          Hasher
}

// New creates a table with a fixed number of slots. maxLoadFactor bounds the
// fraction of slots that may be occupied.
func New[V any](capacity int, maxLoadFactor float64, opts ...Option) (*Table[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if math.IsNaN(maxLoadFactor) || maxLoadFactor <= 0 || maxLoadFactor > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLoadFactor, maxLoadFactor)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.hash == nil {
		seed := maphash.MakeSeed()
		o.hash = func(key string) uint64 {
			return maphash.String(seed, key)
		}
	}

	return &Table[V]{
		slots:         make([]slot[V], capacity),
		maxLoadFactor: maxLoadFactor,
		hash:          o.hash,
	}, nil
}

func (t *Table[V]) home(key string) int {
	return int(t.hash(key) % uint64(len(t.slots)))
}

func (t *Table[V]) next(i int) int {
	i++
	if i == len(t.slots) {
		return 0
	}
	return i
}

// distance is the number of forward steps from a to b, wrapping.
func (t *Table[V]) distance(a, b int) int {
	d := b - a
	if d < 0 {
		d += len(t.slots)
	}
	return d
}

// lookup returns the slot holding key, or the first empty slot on its probe
// path (-1 for that when the run covers the whole table).
func (t *Table[V]) lookup(key string) (found, empty int) {
	idx := t.home(key)
	for range t.slots {
		s := &t.slots[idx]
		if !s.used {
			return -1, idx
		}
		if s.key == key {
			return idx, -1
		}
		idx = t.next(idx)
	}
	return -1, -1
}

// Update stores value under key. An existing key is overwritten in place.
// A new key is admitted only while the load factor ceiling has not been
// reached. Returns false, with the table unchanged, when the key is rejected.
func (t *Table[V]) Update(key string, value V) bool {
	if len(t.slots) == 0 {
		return false
	}
	found, empty := t.lookup(key)
	if found >= 0 {
		t.slots[found].value = value
		return true
	}
	if empty < 0 || float64(t.count) >= float64(len(t.slots))*t.maxLoadFactor {
		return false
	}
	t.slots[empty] = slot[V]{used: true, key: key, value: value}
	t.count++
	return true
}

// Find returns the value stored under key.
func (t *Table[V]) Find(key string) (value V, ok bool) {
	if len(t.slots) == 0 {
		return
	}
	if found, _ := t.lookup(key); found >= 0 {
		return t.slots[found].value, true
	}
	return
}

// Contains reports whether key is present.
func (t *Table[V]) Contains(key string) bool {
	_, ok := t.Find(key)
	return ok
}

// Remove deletes key and reports whether it was present.
func (t *Table[V]) Remove(key string) bool {
	if len(t.slots) == 0 {
		return false
	}
	found, _ := t.lookup(key)
	if found < 0 {
		return false
	}

	t.slots[found] = slot[V]{}
	t.count--

	// Shift the rest of the probe run back into the hole. An entry may move
	// into the hole only if the hole lies between its home and its slot.
	hole := found
	for j := t.next(hole); t.slots[j].used; j = t.next(j) {
		h := t.home(t.slots[j].key)
		if t.distance(h, hole) < t.distance(h, j) {
			t.slots[hole] = t.slots[j]
			t.slots[j] = slot[V]{}
			hole = j
		}
	}
	return true
}

// Len returns the number of stored keys.
func (t *Table[V]) Len() int {
	return t.count
}

// IsEmpty reports whether no keys are stored.
func (t *Table[V]) IsEmpty() bool {
	return t.count == 0
}

// Cap returns the number of slots.
func (t *Table[V]) Cap() int {
	return len(t.slots)
}

// MaxLoadFactor returns the admission ceiling the table was created with.
func (t *Table[V]) MaxLoadFactor() float64 {
	return t.maxLoadFactor
}

// Keys returns the stored keys in slot order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, 0, t.count)
	for i := range t.slots {
		if t.slots[i].used {
			keys = append(keys, t.slots[i].key)
		}
	}
	return keys
}

// Purge removes every key. The capacity is kept.
func (t *Table[V]) Purge() {
	clear(t.slots)
	t.count = 0
}

// Clone returns a deep copy with the same capacity, load factor and hash.
func (t *Table[V]) Clone() *Table[V] {
	c := *t
	c.slots = make([]slot[V], len(t.slots))
	copy(c.slots, t.slots)
	return &c
}

// Take moves the contents of t into a new table. t is left empty with
// capacity 0 and rejects every Update until reassigned.
func (t *Table[V]) Take() *Table[V] {
	moved := *t
	t.slots = nil
	t.count = 0
	return &moved
}
