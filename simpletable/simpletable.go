// Package simpletable provides a fixed-capacity table backed by an unsorted
// array. Lookups are linear scans. It implements the same contract as lptable
// and trades its complexity guarantees for a smaller footprint and stable
// insertion order.
package simpletable

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New for a non-positive capacity.
var ErrInvalidCapacity = errors.New("simpletable: capacity must be positive")

type record[V any] struct {
	key   string
	value V
}

// Table is an array table. It is not safe for concurrent use.
type Table[V any] struct {
	records  []record[V]
	capacity int
}

// New creates a table that holds at most capacity keys.
func New[V any](capacity int) (*Table[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Table[V]{
		records:  make([]record[V], 0, capacity),
		capacity: capacity,
	}, nil
}

func (t *Table[V]) search(key string) int {
	for i := range t.records {
		if t.records[i].key == key {
			return i
		}
	}
	return -1
}

// Update stores value under key. A new key is appended while there is room;
// otherwise Update returns false and the table is unchanged.
func (t *Table[V]) Update(key string, value V) bool {
	if i := t.search(key); i >= 0 {
		t.records[i].value = value
		return true
	}
	if len(t.records) >= t.capacity {
		return false
	}
	t.records = append(t.records, record[V]{key: key, value: value})
	return true
}

// Find returns the value stored under key.
func (t *Table[V]) Find(key string) (value V, ok bool) {
	if i := t.search(key); i >= 0 {
		return t.records[i].value, true
	}
	return
}

// Remove deletes key, keeping the remaining keys in insertion order.
func (t *Table[V]) Remove(key string) bool {
	i := t.search(key)
	if i < 0 {
		return false
	}
	copy(t.records[i:], t.records[i+1:])
	t.records[len(t.records)-1] = record[V]{}
	t.records = t.records[:len(t.records)-1]
	return true
}

// Len returns the number of stored keys.
func (t *Table[V]) Len() int { return len(t.records) }

// IsEmpty reports whether no keys are stored.
func (t *Table[V]) IsEmpty() bool { return len(t.records) == 0 }

// Cap returns the maximum number of keys.
func (t *Table[V]) Cap() int { return t.capacity }

// Keys returns the stored keys in insertion order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, len(t.records))
	for i := range t.records {
		keys[i] = t.records[i].key
	}
	return keys
}

// Purge removes every key.
func (t *Table[V]) Purge() {
	clear(t.records)
	t.records = t.records[:0]
}

// Clone returns a deep copy with the same capacity.
func (t *Table[V]) Clone() *Table[V] {
	records := make([]record[V], len(t.records), t.capacity)
	copy(records, t.records)
	return &Table[V]{records: records, capacity: t.capacity}
}

// Take moves the contents of t into a new table. t is left empty with
// capacity 0.
func (t *Table[V]) Take() *Table[V] {
	moved := &Table[V]{records: t.records, capacity: t.capacity}
	t.records = nil
	t.capacity = 0
	return moved
}
