// Package aggregate reduces the targets of retrieved neighbors to a single
// prediction.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
)

// Method selects how neighbor targets combine into one prediction.
type Method int

const (
	// Mean is the unweighted average of neighbor targets.
	Mean Method = iota

	// Median is the middle neighbor target, averaging the two middle
	// values for even counts.
	Median

	// WeightedMean weights each neighbor by one minus its share of the
	// total distance, renormalized. Closer neighbors count more.
	WeightedMean
)

// String returns the canonical configuration name of the method.
func (m Method) String() string {
	switch m {
	case Mean:
		return "mean"
	case Median:
		return "median"
	case WeightedMean:
		return "weighted_mean"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Valid reports whether m names a supported method.
func (m Method) Valid() bool {
	switch m {
	case Mean, Median, WeightedMean:
		return true
	default:
		return false
	}
}

// ParseMethod converts a canonical configuration name into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "mean":
		return Mean, nil
	case "median":
		return Median, nil
	case "weighted_mean":
		return WeightedMean, nil
	default:
		return 0, fmt.Errorf("unknown aggregation method: %q", s)
	}
}

// ErrNoNeighbors is returned when there is nothing to aggregate.
var ErrNoNeighbors = errors.New("no neighbors to aggregate")

// Aggregate combines neighbor targets into one prediction. distances[i]
// must be the true distance belonging to targets[i], ordered as retrieved.
func Aggregate(m Method, distances, targets []float64) (float64, error) {
	if len(targets) == 0 {
		return 0, ErrNoNeighbors
	}

	if len(distances) != len(targets) {
		return 0, fmt.Errorf("aggregate: %d distances for %d targets", len(distances), len(targets))
	}

	switch m {
	case Mean:
		return mean(targets), nil
	case Median:
		return median(targets), nil
	case WeightedMean:
		return weightedMean(distances, targets), nil
	default:
		return 0, fmt.Errorf("aggregate: unknown method %d", int(m))
	}
}

func mean(vals []float64) float64 {
	var sum float64

	for _, v := range vals {
		sum += v
	}

	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}

// weightedMean assigns each neighbor the weight 1 - d/sum(d) and
// renormalizes. It degenerates to the plain mean when all distances are
// zero or when a single neighbor carries the full distance mass, since the
// renormalized weights are undefined there.
func weightedMean(distances, targets []float64) float64 {
	var total float64

	for _, d := range distances {
		total += d
	}

	if total == 0 {
		return mean(targets)
	}

	weights := make([]float64, len(distances))

	var sum float64

	for i, d := range distances {
		w := 1 - d/total
		weights[i] = w
		sum += w
	}

	if sum == 0 {
		return mean(targets)
	}

	var out float64

	for i, w := range weights {
		out += w / sum * targets[i]
	}

	return out
}
