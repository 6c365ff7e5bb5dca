package tensor

import (
	"strconv"
	"sync/atomic"
)

// UniqueID identifies one tensor instance independent of its value.
//
// IDs come from a single process-wide counter and are never reused.
// The zero value is never handed out and means "no identity".
type UniqueID uint64

var lastID atomic.Uint64

// NewUniqueID returns an ID distinct from every ID returned before.
// Safe for concurrent use.
func NewUniqueID() UniqueID {
	return UniqueID(lastID.Add(1))
}

// String returns the ID as "#N".
func (id UniqueID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// HasUniqueID is implemented by everything that can own a gradient.
type HasUniqueID interface {
	ID() UniqueID
}
