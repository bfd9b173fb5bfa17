package t2048

import "time"

// DefaultHistoryCapacity is the number of undo snapshots kept per game.
const DefaultHistoryCapacity = 10

// state is one undo snapshot. The grid is always an independent copy.
type state struct {
	grid    Grid
	score   int
	moves   int
	maxTile int
	elapsed time.Duration
}

// History is a bounded stack of snapshots. When full, pushing evicts the
// oldest entry.
type History struct {
	entries  []state
	capacity int
}

// NewHistory creates an empty history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  make([]state, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a snapshot, dropping the oldest one past capacity.
func (h *History) Push(s state) {
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, s)
}

// Rewind discards the newest snapshot and returns the one before it.
// It refuses to go past the oldest entry.
func (h *History) Rewind() (state, bool) {
	if len(h.entries) <= 1 {
		return state{}, false
	}
	h.entries[len(h.entries)-1] = state{}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of stored snapshots.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
