package cachekit

// Table is the keyed container contract shared by the cachekit indexes.
// Expected conditions such as a missing key or a full table are reported by
// the boolean results, never by panics.
type Table[V any] interface {
	// Stores value under key, overwriting an existing value. Returns false
	// if a new key could not be admitted.
	Update(key string, value V) bool

	// Removes key. Returns false if it was not present.
	Remove(key string) bool

	// Returns the value stored under key. #value, isFound
	Find(key string) (value V, ok bool)

	// Returns the number of stored keys.
	Len() int

	// Reports whether no keys are stored.
	IsEmpty() bool
}
