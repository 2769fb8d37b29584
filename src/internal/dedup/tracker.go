package dedup

import (
	"sync"
	"sync/atomic"
)

// Tracker remembers which log identities have already been handled in
// this process's lifetime. The set is bounded: once capacity is
// reached, the oldest tracked id is forgotten first, so a very old
// entry still present in the source file may be re-emitted after a
// long session. Capacity 0 disables the bound.
//
// State is never persisted; a restart forgets history.
type Tracker struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	order    []string
	capacity int

	// Statistics
	totalChecked atomic.Uint64
	totalEvicted atomic.Uint64
}

// NewTracker creates a tracker bounded to capacity ids.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		seen:     make(map[string]struct{}),
		capacity: capacity,
	}
}

// ShouldProcess reports whether the id has not been seen before,
// recording it as seen when it returns true. An id is recorded at
// most once.
func (t *Tracker) ShouldProcess(id string) bool {
	t.totalChecked.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.seen[id]; exists {
		return false
	}

	if t.capacity > 0 && len(t.order) >= t.capacity {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.seen, oldest)
		t.totalEvicted.Add(1)
	}

	t.seen[id] = struct{}{}
	t.order = append(t.order, id)
	return true
}

// Len returns the number of ids currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// GetStats returns tracker statistics.
func (t *Tracker) GetStats() map[string]any {
	t.mu.Lock()
	tracked := len(t.seen)
	t.mu.Unlock()

	return map[string]any{
		"tracked":       tracked,
		"capacity":      t.capacity,
		"total_checked": t.totalChecked.Load(),
		"total_evicted": t.totalEvicted.Load(),
	}
}
