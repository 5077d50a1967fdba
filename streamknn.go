package streamknn

import (
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/streamknn/aggregate"
	"github.com/hupe1980/streamknn/distance"
	"github.com/hupe1980/streamknn/feature"
	"github.com/hupe1980/streamknn/index"
	"github.com/hupe1980/streamknn/index/kdtree"
	"github.com/hupe1980/streamknn/window"
)

// Regressor is a sliding-window k-nearest-neighbors regressor.
//
// A single mutex serializes Learn and Predict, so a Regressor is safe for
// concurrent use, though streams are typically consumed by one goroutine.
type Regressor struct {
	mu      sync.Mutex
	opts    Options
	codec   *feature.Codec
	window  *window.Window
	idx     index.Index
	dirty   bool
	built   []window.Entry
	width   int
	logger  *Logger
	metrics MetricsCollector
}

// New creates a regressor from DefaultOptions modified by the given option
// functions. All configuration is validated here; a returned Regressor is
// ready to learn.
func New(optFns ...func(o *Options)) (*Regressor, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	dist, err := distance.Minkowski(opts.P)
	if err != nil {
		return nil, &ErrInvalidOption{Option: "P", Value: opts.P, Reason: err.Error()}
	}

	idx, err := kdtree.New(dist, func(o *kdtree.Options) {
		o.LeafSize = opts.LeafSize
	})
	if err != nil {
		return nil, fmt.Errorf("streamknn: create index: %w", err)
	}

	return &Regressor{
		opts:    opts,
		codec:   feature.NewCodec(opts.Registry),
		window:  window.New(opts.MaxWindowSize),
		idx:     idx,
		dirty:   true,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}, nil
}

// Learn records one labeled observation, evicting the oldest stored sample
// once the window is full. It returns the regressor for chaining:
//
//	knn.Learn(x1, y1).Learn(x2, y2)
func (r *Regressor) Learn(x feature.Features, y float64) *Regressor {
	start := time.Now()

	r.mu.Lock()
	vec := r.codec.Project(x)
	r.window.Insert(vec, y)
	r.dirty = true
	size := r.window.Len()
	r.mu.Unlock()

	r.metrics.RecordLearn(time.Since(start))
	r.logger.LogLearn(size, len(vec))

	return r
}

// Predict estimates the target for x from the NNeighbors stored samples
// nearest to it. While the window holds fewer than NNeighbors samples it
// returns ErrInsufficientData; the regressor state is never consulted in a
// degraded way.
func (r *Regressor) Predict(x feature.Features) (float64, error) {
	start := time.Now()

	r.mu.Lock()
	yHat, err := r.predict(x)
	r.mu.Unlock()

	r.metrics.RecordPredict(time.Since(start), err)
	r.logger.LogPredict(r.opts.NNeighbors, err)

	return yHat, err
}

// predict runs under the regressor mutex.
func (r *Regressor) predict(x feature.Features) (float64, error) {
	if n := r.window.Len(); n < r.opts.NNeighbors {
		return 0, fmt.Errorf("%w: window holds %d of %d required samples", ErrInsufficientData, n, r.opts.NNeighbors)
	}

	q := r.codec.Project(x)

	// Projecting the query may have widened the feature space, so a clean
	// index can still be stale in width.
	if r.dirty || len(q) != r.width {
		r.rebuild(len(q))
	}

	neighbors, err := r.idx.KNN(q, r.opts.NNeighbors)
	if err != nil {
		return 0, fmt.Errorf("streamknn: search: %w", err)
	}

	distances := make([]float64, len(neighbors))
	targets := make([]float64, len(neighbors))

	for i, nb := range neighbors {
		distances[i] = nb.Distance
		targets[i] = r.built[nb.Index].Target
	}

	yHat, err := aggregate.Aggregate(r.opts.Aggregation, distances, targets)
	if err != nil {
		return 0, fmt.Errorf("streamknn: aggregate: %w", err)
	}

	return yHat, nil
}

// rebuild re-indexes the current window snapshot at the given vector width.
// Stored vectors projected under a narrower ordering are zero-padded, which
// is exact re-projection because the ordering only grows at the end.
func (r *Regressor) rebuild(width int) {
	snap := r.window.Snapshot()

	points := make([][]float64, len(snap))
	for i, e := range snap {
		points[i] = feature.Pad(e.Vector, width)
	}

	r.idx.Build(points)
	r.built = snap
	r.width = width
	r.dirty = false
}

// Size returns the number of samples currently held in the window.
func (r *Regressor) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.window.Len()
}

// Capacity returns the configured maximum window size.
func (r *Regressor) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.window.Cap()
}

// Registry returns the feature-name ordering the regressor projects with.
// Pass it to another regressor's Options to share one feature space.
func (r *Regressor) Registry() *feature.Registry {
	return r.codec.Registry()
}
