// Package store provides the bounded in-memory ring used for recent events
// and device scans. Newest entries sit at the head; once the capacity is
// reached the oldest entries fall off the tail.
package store

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when no entry carries the requested ID.
	ErrNotFound = errors.New("entry not found")
	// ErrEmpty is returned when the latest entry of an empty ring is requested.
	ErrEmpty = errors.New("store is empty")
)

// Entry is anything the ring can hold.
type Entry interface {
	EntryID() int64
}

// Ring is a capacity-bounded, newest-first sequence of entries. All methods
// are safe for concurrent use.
type Ring[T Entry] struct {
	mu       sync.RWMutex
	entries  []T
	capacity int
}

// NewRing creates an empty ring holding at most capacity entries.
func NewRing[T Entry](capacity int) *Ring[T] {
	return &Ring[T]{capacity: capacity}
}

// Append inserts an entry at the head, evicting the oldest entries if the
// ring is over capacity, and returns the entry's ID.
func (r *Ring[T]) Append(entry T) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]T{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
	return entry.EntryID()
}

// List returns a copy of all entries, newest first.
func (r *Ring[T]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

// GetByID returns the entry with the given ID, or ErrNotFound.
func (r *Ring[T]) GetByID(id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.EntryID() == id {
			return entry, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Latest returns the most recently appended entry, or ErrEmpty.
func (r *Ring[T]) Latest() (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.entries[0], nil
}

// Clear removes all entries.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Len returns the current number of entries.
func (r *Ring[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
