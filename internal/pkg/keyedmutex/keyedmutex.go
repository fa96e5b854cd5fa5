// Package keyedmutex provides per-key exclusive critical sections.
// The mission engine serializes every read-modify-write on a mission through
// the mutex keyed by that mission's id, so concurrent transition requests,
// dispatch attempts, and position reports for one mission never interleave
// while unrelated missions proceed in parallel.
package keyedmutex

import "sync"

// KeyedMutex maps string keys to mutexes, creating them on first use.
// Mutexes are never evicted; the key space is bounded by the number of
// missions a process handles during its lifetime.
type KeyedMutex struct {
	mutexes sync.Map
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the exclusive lock for the given key, blocking until it is
// available. The returned function releases the lock.
//
// Example:
//
//	unlock := locks.Lock(missionID.String())
//	defer unlock()
func (k *KeyedMutex) Lock(key string) func() {
	v, _ := k.mutexes.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
