// Package index provides interfaces and types for exact nearest-neighbor
// search over window snapshots.
package index

import (
	"errors"
	"fmt"
)

// ErrInvalidK is returned when a search asks for a non-positive number of
// neighbors.
var ErrInvalidK = errors.New("k must be positive")

// ErrDimensionMismatch is a named error type for dimension mismatch between
// a query and the indexed points.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Neighbor represents one retrieved point.
type Neighbor struct {
	// Index is the position of the point in the snapshot the index was
	// built from.
	Index int

	// Distance is the true distance between the query and the point.
	Distance float64
}

// Index answers exact k-nearest-neighbor queries over a fixed snapshot of
// points. Build replaces the indexed snapshot wholesale; KNN answers against
// whatever snapshot the index was last built from.
//
// Implementations return neighbors ordered by ascending distance, ties
// broken by ascending snapshot position, and return fewer than k neighbors
// only when the snapshot itself holds fewer points.
type Index interface {
	// Build indexes the given points, replacing any previous snapshot.
	// All points must share one width.
	Build(points [][]float64)

	// KNN returns the k points nearest to q.
	KNN(q []float64, k int) ([]Neighbor, error)

	// Len returns the number of indexed points.
	Len() int
}
