package streamknn

import (
	"math"

	"github.com/hupe1980/streamknn/aggregate"
	"github.com/hupe1980/streamknn/feature"
)

// Options contains configuration options for the regressor.
type Options struct {
	// NNeighbors is the number of nearest neighbors retrieved per
	// prediction.
	NNeighbors int

	// MaxWindowSize caps how many recent samples the regressor retains.
	// Once the window is full, every new sample evicts the oldest one.
	MaxWindowSize int

	// LeafSize is the partition size at or below which the spatial index
	// scans linearly instead of subdividing further. Tuning only;
	// predictions do not depend on it.
	LeafSize int

	// P is the Minkowski distance order: 1 is Manhattan, 2 is Euclidean,
	// +Inf is Chebyshev. Must be at least 1.
	P float64

	// Aggregation selects how neighbor targets combine into a prediction.
	Aggregation aggregate.Method

	// Registry, when set, shares one feature-name ordering across several
	// estimators so their vectors agree on coordinate meaning. Left nil,
	// the regressor keeps a private ordering.
	Registry *feature.Registry

	// Logger receives structured operation logs. Defaults to a silent
	// logger.
	Logger *Logger

	// Metrics receives operation timings. Defaults to a no-op collector.
	Metrics MetricsCollector
}

// DefaultOptions contains the default configuration options for the
// regressor.
var DefaultOptions = Options{
	NNeighbors:    5,
	MaxWindowSize: 1000,
	LeafSize:      30,
	P:             2,
	Aggregation:   aggregate.Mean,
}

func (o *Options) validate() error {
	if o.NNeighbors < 1 {
		return &ErrInvalidOption{Option: "NNeighbors", Value: o.NNeighbors, Reason: "must be at least 1"}
	}

	if o.MaxWindowSize < 1 {
		return &ErrInvalidOption{Option: "MaxWindowSize", Value: o.MaxWindowSize, Reason: "must be at least 1"}
	}

	if o.LeafSize < 1 {
		return &ErrInvalidOption{Option: "LeafSize", Value: o.LeafSize, Reason: "must be at least 1"}
	}

	if math.IsNaN(o.P) || o.P < 1 {
		return &ErrInvalidOption{Option: "P", Value: o.P, Reason: "must be at least 1"}
	}

	if !o.Aggregation.Valid() {
		return &ErrInvalidOption{Option: "Aggregation", Value: o.Aggregation, Reason: "unknown aggregation method"}
	}

	return nil
}
