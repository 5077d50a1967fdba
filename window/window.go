// Package window implements the bounded store of recent observations.
//
// A Window keeps the most recent labeled vectors in insertion order inside a
// fixed-capacity ring. Once full, every insert evicts the oldest entry, so
// memory stays constant no matter how long the stream runs.
package window

// Entry is one labeled observation held by the window. Seq is the global
// insertion number, assigned monotonically starting at zero and never
// reused, which makes results reproducible when distances tie.
type Entry struct {
	Seq    uint64
	Vector []float64
	Target float64
}

// Window is a fixed-capacity ring of entries with strict FIFO eviction.
// It is not safe for concurrent use; the owning engine serializes access.
type Window struct {
	entries []Entry
	head    int
	size    int
	seq     uint64
}

// New creates an empty window holding at most capacity entries.
func New(capacity int) *Window {
	if capacity <= 0 {
		panic("window: capacity must be positive")
	}

	return &Window{
		entries: make([]Entry, capacity),
	}
}

// Insert appends a labeled vector, evicting the oldest entry when the window
// is full. The window takes ownership of the vector.
func (w *Window) Insert(vector []float64, target float64) {
	e := Entry{
		Seq:    w.seq,
		Vector: vector,
		Target: target,
	}
	w.seq++

	if w.size < len(w.entries) {
		w.entries[(w.head+w.size)%len(w.entries)] = e
		w.size++

		return
	}

	w.entries[w.head] = e
	w.head = (w.head + 1) % len(w.entries)
}

// Len returns the number of entries currently held.
func (w *Window) Len() int {
	return w.size
}

// Cap returns the configured capacity.
func (w *Window) Cap() int {
	return len(w.entries)
}

// Seq returns the insertion number the next entry will receive, which is
// also the total number of inserts so far.
func (w *Window) Seq() uint64 {
	return w.seq
}

// Snapshot returns the live entries oldest first. The returned slice is
// fresh, but the entry vectors alias window storage and must be treated as
// read-only.
func (w *Window) Snapshot() []Entry {
	out := make([]Entry, w.size)

	for i := 0; i < w.size; i++ {
		out[i] = w.entries[(w.head+i)%len(w.entries)]
	}

	return out
}
