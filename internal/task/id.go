package task

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID mints an item identifier from the given creation time. IDs are
// decimal nanosecond timestamps; a mint that would collide with or run
// behind an earlier one is bumped past it, so IDs stay unique and
// monotonic within a process even when the clock stalls.
func NewID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	n := now.UnixNano()
	if n <= lastID {
		n = lastID + 1
	}
	lastID = n
	return strconv.FormatInt(n, 10)
}
