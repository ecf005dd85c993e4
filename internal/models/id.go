package models

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a unique millisecond-scale identifier. IDs follow the wall
// clock but bump past the previous value when two callers land in the same
// millisecond, so they stay unique for the life of the process.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
