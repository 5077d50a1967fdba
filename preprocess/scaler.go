// Package preprocess provides online feature transformations that learn
// their statistics one observation at a time, so they can sit in front of
// the regressor on an unbounded stream.
package preprocess

import (
	"math"

	"github.com/hupe1980/streamknn/feature"
)

// StandardScaler shifts every feature to zero mean and scales it to unit
// variance, using running moments that update in constant time per
// observation. Features it has never seen pass through centered only.
//
// It is not safe for concurrent use.
type StandardScaler struct {
	counts map[string]uint64
	means  map[string]float64
	m2     map[string]float64
}

// NewStandardScaler creates a scaler with no accumulated statistics.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		counts: make(map[string]uint64),
		means:  make(map[string]float64),
		m2:     make(map[string]float64),
	}
}

// Learn folds one observation into the running moments. It returns the
// scaler for chaining.
func (s *StandardScaler) Learn(x feature.Features) *StandardScaler {
	for name, v := range x {
		s.counts[name]++

		n := float64(s.counts[name])
		delta := v - s.means[name]
		s.means[name] += delta / n
		s.m2[name] += delta * (v - s.means[name])
	}

	return s
}

// Transform returns x standardized under the statistics accumulated so far.
// Constant features, and features observed fewer than twice, are centered
// but not scaled.
func (s *StandardScaler) Transform(x feature.Features) feature.Features {
	out := make(feature.Features, len(x))

	for name, v := range x {
		mean := s.means[name]
		std := s.std(name)

		if std == 0 {
			out[name] = v - mean
			continue
		}

		out[name] = (v - mean) / std
	}

	return out
}

// LearnTransform folds the observation in and returns it standardized,
// which is the usual call on a stream.
func (s *StandardScaler) LearnTransform(x feature.Features) feature.Features {
	return s.Learn(x).Transform(x)
}

// Mean returns the running mean of a feature.
func (s *StandardScaler) Mean(name string) float64 {
	return s.means[name]
}

// Std returns the running population standard deviation of a feature.
func (s *StandardScaler) Std(name string) float64 {
	return s.std(name)
}

func (s *StandardScaler) std(name string) float64 {
	n := s.counts[name]
	if n < 2 {
		return 0
	}

	return math.Sqrt(s.m2[name] / float64(n))
}
