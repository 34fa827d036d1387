package axon

import "sync"

// StatusRegister holds the most recent value of T.
// No history is kept, every Set overwrites the previous value.
type StatusRegister[T any] struct {
	value   T
	updated bool
	lock    sync.RWMutex
}

// Set overwrites the value.
func (r *StatusRegister[T]) Set(v T) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.value, r.updated = v, true
}

// Get returns the last value set, or the zero value of T.
func (r *StatusRegister[T]) Get() T {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.value
}

// Updated reports whether Set was ever called.
func (r *StatusRegister[T]) Updated() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.updated
}
