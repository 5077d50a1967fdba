// Package queue provides the bounded candidate heap shared by the exact and
// kd-tree nearest-neighbor searches.
package queue

// Candidate is one stored point under consideration during a search.
// Index is the position of the point in the snapshot being searched.
type Candidate struct {
	Index    int
	Distance float64
}

// worse reports whether a is a strictly worse result than b: a larger
// distance loses, and among equal distances the later snapshot position
// loses. Ranking ties by position keeps search results reproducible.
func worse(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Index > b.Index
}

// Bounded is a value-based binary max-heap holding the k best candidates
// seen so far, with the worst of them on top. It does not implement
// container/heap to keep interface conversions off the search hot path.
type Bounded struct {
	k     int
	items []Candidate
}

// NewBounded initializes a heap that retains at most k candidates.
func NewBounded(k int) *Bounded {
	return &Bounded{
		k:     k,
		items: make([]Candidate, 0, k),
	}
}

// Len returns the number of candidates currently held.
func (q *Bounded) Len() int { return len(q.items) }

// Full reports whether the heap holds its maximum of k candidates.
func (q *Bounded) Full() bool { return len(q.items) >= q.k }

// Worst returns the worst candidate currently kept, which is the one a new
// candidate must beat once the heap is full.
func (q *Bounded) Worst() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	return q.items[0], true
}

// Push offers a candidate. While the heap has room the candidate is always
// kept; once full it replaces the current worst only if it beats it.
func (q *Bounded) Push(c Candidate) {
	if len(q.items) < q.k {
		q.items = append(q.items, c)
		q.siftUp(len(q.items) - 1)
		return
	}
	if worse(q.items[0], c) {
		q.items[0] = c
		q.siftDown(0)
	}
}

// Sorted drains the heap and returns the kept candidates ordered by
// ascending distance, ties by ascending snapshot position. The heap is
// empty afterwards.
func (q *Bounded) Sorted() []Candidate {
	out := make([]Candidate, len(q.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = q.pop()
	}
	return out
}

// Reset clears the heap for reuse.
func (q *Bounded) Reset() {
	q.items = q.items[:0]
}

// pop removes and returns the worst kept candidate.
func (q *Bounded) pop() Candidate {
	n := len(q.items)
	root := q.items[0]
	last := q.items[n-1]
	q.items[n-1] = Candidate{}
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root
}

func (q *Bounded) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !worse(q.items[i], q.items[p]) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Bounded) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		worst := l
		if r := l + 1; r < n && worse(q.items[r], q.items[l]) {
			worst = r
		}
		if !worse(q.items[worst], q.items[i]) {
			return
		}
		q.items[i], q.items[worst] = q.items[worst], q.items[i]
		i = worst
	}
}
