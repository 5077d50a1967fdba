// Package kdtree implements the hierarchical nearest-neighbor index. Points
// are recursively partitioned along coordinate axes at the median, and
// partitions at or below the configured leaf size are kept as flat buckets
// that searches scan linearly.
package kdtree

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hupe1980/streamknn/distance"
	"github.com/hupe1980/streamknn/index"
	"github.com/hupe1980/streamknn/internal/queue"
)

// Compile-time check to ensure KDTree satisfies the index interface.
var _ index.Index = (*KDTree)(nil)

// Options contains configuration options for the kd-tree.
type Options struct {
	// LeafSize is the partition size at or below which points are scanned
	// linearly instead of subdivided further. It trades tree depth against
	// scan width and never changes search results.
	LeafSize int
}

// DefaultOptions contains the default configuration options for the kd-tree.
var DefaultOptions = Options{
	LeafSize: 30,
}

// node is either an internal split or a leaf bucket. axis is -1 for leaves.
type node struct {
	axis   int
	split  float64
	left   *node
	right  *node
	bucket []int
}

// KDTree answers exact k-nearest-neighbor queries by recursive spatial
// subdivision with median splits.
type KDTree struct {
	opts   Options
	dist   distance.Func
	points [][]float64
	dim    int
	root   *node
}

// New creates an empty kd-tree using the given distance function.
func New(dist distance.Func, optFns ...func(o *Options)) (*KDTree, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if dist == nil {
		return nil, errors.New("kdtree: distance function must not be nil")
	}

	if opts.LeafSize < 1 {
		return nil, fmt.Errorf("kdtree: invalid leaf size: %d", opts.LeafSize)
	}

	return &KDTree{
		opts: opts,
		dist: dist,
	}, nil
}

// Build indexes the given points, replacing any previous snapshot. All
// points must share one width. The index keeps a reference to the slice;
// callers must not mutate it while the index is in use.
func (t *KDTree) Build(points [][]float64) {
	t.points = points
	t.root = nil
	t.dim = 0

	if len(points) == 0 {
		return
	}

	t.dim = len(points[0])

	ords := make([]int, len(points))
	for i := range ords {
		ords[i] = i
	}

	t.root = t.build(ords, 0)
}

// build partitions ords recursively. Each node owns its subrange of the
// shared ordinal slice, so building allocates no per-level copies.
func (t *KDTree) build(ords []int, depth int) *node {
	if len(ords) <= t.opts.LeafSize || t.dim == 0 {
		return &node{axis: -1, bucket: ords}
	}

	axis := depth % t.dim

	// Ordering equal coordinates by position keeps rebuilds reproducible.
	sort.Slice(ords, func(i, j int) bool {
		a, b := t.points[ords[i]][axis], t.points[ords[j]][axis]
		if a != b {
			return a < b
		}

		return ords[i] < ords[j]
	})

	mid := len(ords) / 2

	n := &node{
		axis:  axis,
		split: t.points[ords[mid]][axis],
	}
	n.left = t.build(ords[:mid], depth+1)
	n.right = t.build(ords[mid:], depth+1)

	return n
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int {
	return len(t.points)
}

// KNN returns the k points nearest to q, ordered by ascending distance with
// ties broken by ascending snapshot position. Results are identical to a
// linear scan under the same distance function.
func (t *KDTree) KNN(q []float64, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return nil, index.ErrInvalidK
	}

	if len(t.points) == 0 {
		return nil, nil
	}

	if len(q) != t.dim {
		return nil, &index.ErrDimensionMismatch{Expected: t.dim, Actual: len(q)}
	}

	if k > len(t.points) {
		k = len(t.points)
	}

	top := queue.NewBounded(k)
	t.search(t.root, q, top)

	candidates := top.Sorted()

	results := make([]index.Neighbor, len(candidates))
	for i, c := range candidates {
		results[i] = index.Neighbor{Index: c.Index, Distance: c.Distance}
	}

	return results, nil
}

// search descends into the half containing q first, then visits the far
// half unless every point there is provably farther than the worst kept
// candidate. The per-axis gap to the splitting plane lower-bounds the
// distance to any point beyond it for every order of at least 1, and equal
// bounds are never pruned, so positional tie-breaks stay exact.
func (t *KDTree) search(n *node, q []float64, top *queue.Bounded) {
	if n.axis < 0 {
		for _, ord := range n.bucket {
			top.Push(queue.Candidate{Index: ord, Distance: t.dist(q, t.points[ord])})
		}

		return
	}

	near, far := n.left, n.right
	if q[n.axis] >= n.split {
		near, far = n.right, n.left
	}

	t.search(near, q, top)

	if !top.Full() {
		t.search(far, q, top)

		return
	}

	worst, _ := top.Worst()
	if math.Abs(q[n.axis]-n.split) <= worst.Distance {
		t.search(far, q, top)
	}
}
