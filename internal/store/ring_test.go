package store_test

import (
	"fmt"
	"testing"

	"github.com/isandoval/fleet-relay-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	id   int64
	name string
}

func (e testEntry) EntryID() int64 { return e.id }

func TestRingAppendAndOrder(t *testing.T) {
	r := store.NewRing[testEntry](5)

	for i := 1; i <= 3; i++ {
		r.Append(testEntry{id: int64(i), name: fmt.Sprintf("entry-%d", i)})
	}

	entries := r.List()
	require.Len(t, entries, 3)
	// Newest first
	assert.Equal(t, int64(3), entries[0].id)
	assert.Equal(t, int64(2), entries[1].id)
	assert.Equal(t, int64(1), entries[2].id)
}

func TestRingEvictsOldestAtCapacity(t *testing.T) {
	const capacity = 5
	r := store.NewRing[testEntry](capacity)

	for i := 1; i <= 12; i++ {
		r.Append(testEntry{id: int64(i)})
	}

	entries := r.List()
	require.Len(t, entries, capacity)
	// Strict reverse-insertion order, oldest dropped first
	for i, entry := range entries {
		assert.Equal(t, int64(12-i), entry.id)
	}
}

func TestRingHoldsMinOfAppendsAndCapacity(t *testing.T) {
	r := store.NewRing[testEntry](10)
	for i := 1; i <= 4; i++ {
		r.Append(testEntry{id: int64(i)})
	}
	assert.Equal(t, 4, r.Len())
}

func TestRingGetByID(t *testing.T) {
	r := store.NewRing[testEntry](5)
	r.Append(testEntry{id: 10, name: "ten"})
	r.Append(testEntry{id: 20, name: "twenty"})

	entry, err := r.GetByID(10)
	require.NoError(t, err)
	assert.Equal(t, "ten", entry.name)

	_, err = r.GetByID(99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRingLatest(t *testing.T) {
	r := store.NewRing[testEntry](5)

	_, err := r.Latest()
	assert.ErrorIs(t, err, store.ErrEmpty)

	r.Append(testEntry{id: 1})
	r.Append(testEntry{id: 2})

	latest, err := r.Latest()
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.id)
}

func TestRingClear(t *testing.T) {
	r := store.NewRing[testEntry](5)
	r.Append(testEntry{id: 1})
	r.Append(testEntry{id: 2})

	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.List())
	_, err := r.Latest()
	assert.ErrorIs(t, err, store.ErrEmpty)
}

func TestRingListReturnsCopy(t *testing.T) {
	r := store.NewRing[testEntry](5)
	r.Append(testEntry{id: 1, name: "original"})

	entries := r.List()
	entries[0].name = "mutated"

	fresh := r.List()
	assert.Equal(t, "original", fresh[0].name)
}
