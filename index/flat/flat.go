// Package flat provides the exact linear-scan implementation of the
// nearest-neighbor index. It defines the reference semantics every other
// index must match and is the natural choice for small snapshots.
package flat

import (
	"github.com/hupe1980/streamknn/distance"
	"github.com/hupe1980/streamknn/index"
	"github.com/hupe1980/streamknn/internal/queue"
)

// Compile-time check to ensure Flat satisfies the index interface.
var _ index.Index = (*Flat)(nil)

// Flat scans every indexed point on each query.
type Flat struct {
	dist   distance.Func
	points [][]float64
	dim    int
}

// New creates an empty flat index using the given distance function.
func New(dist distance.Func) *Flat {
	if dist == nil {
		panic("flat: distance function must not be nil")
	}

	return &Flat{dist: dist}
}

// Build indexes the given points, replacing any previous snapshot. The
// index keeps a reference to the slice; callers must not mutate it while
// the index is in use.
func (f *Flat) Build(points [][]float64) {
	f.points = points
	f.dim = 0

	if len(points) > 0 {
		f.dim = len(points[0])
	}
}

// Len returns the number of indexed points.
func (f *Flat) Len() int {
	return len(f.points)
}

// KNN returns the k points nearest to q, ordered by ascending distance with
// ties broken by ascending snapshot position.
func (f *Flat) KNN(q []float64, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return nil, index.ErrInvalidK
	}

	if len(f.points) == 0 {
		return nil, nil
	}

	if len(q) != f.dim {
		return nil, &index.ErrDimensionMismatch{Expected: f.dim, Actual: len(q)}
	}

	if k > len(f.points) {
		k = len(f.points)
	}

	top := queue.NewBounded(k)

	for i, p := range f.points {
		top.Push(queue.Candidate{Index: i, Distance: f.dist(q, p)})
	}

	candidates := top.Sorted()

	results := make([]index.Neighbor, len(candidates))
	for i, c := range candidates {
		results[i] = index.Neighbor{Index: c.Index, Distance: c.Distance}
	}

	return results, nil
}
