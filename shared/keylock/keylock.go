package keylock

import (
	"strings"
	"sync"
)

const separator = "|"

// KeyedMutex serializes mutating operations that share a logical key, e.g.
// all booking attempts for one (tenant, room, date) slot or all call-next
// invocations for one department. Locks are created lazily and never evicted;
// the key space (rooms x dates, departments) is small and bounded in practice.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{
		locks: map[string]*sync.Mutex{},
	}
}

// Key joins the parts of a composite serialization key.
func Key(parts ...string) string {
	return strings.Join(parts, separator)
}

// Lock acquires the mutex for the given key, blocking until it is free, and
// returns the unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
