package srs

import "sync"

// keyedMutex serializes work per learning id. Grading is a read-modify-write
// of one row; two concurrent grades of the same id would silently lose one
// update without this.
//
// Entries are never removed. The key space is bounded by the user's
// vocabulary, so the map stays small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key int64) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
