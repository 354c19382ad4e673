package cachekit

import "sync"

// RWLocker is the lock a Cache takes around its index and ranking. Get
// counts an access and reorders the ranking, so it takes the write side.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

var (
	_ RWLocker = (*sync.RWMutex)(nil)
	_ RWLocker = NoOpRWLocker{}
)

// NoOpRWLocker does no locking. Caches use it unless WithLocker or
// WithSynchronization is given, and must then stay on one goroutine.
type NoOpRWLocker struct{}

func (NoOpRWLocker) Lock()    {}
func (NoOpRWLocker) Unlock()  {}
func (NoOpRWLocker) RLock()   {}
func (NoOpRWLocker) RUnlock() {}
