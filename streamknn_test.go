package streamknn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/streamknn/aggregate"
	"github.com/hupe1980/streamknn/feature"
	"github.com/hupe1980/streamknn/testutil"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		knn, err := New()
		require.NoError(t, err)

		assert.Equal(t, 0, knn.Size())
		assert.Equal(t, 1000, knn.Capacity())
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(o *Options)
		}{
			{"ZeroNeighbors", func(o *Options) { o.NNeighbors = 0 }},
			{"NegativeNeighbors", func(o *Options) { o.NNeighbors = -3 }},
			{"ZeroWindow", func(o *Options) { o.MaxWindowSize = 0 }},
			{"ZeroLeafSize", func(o *Options) { o.LeafSize = 0 }},
			{"PBelowOne", func(o *Options) { o.P = 0.5 }},
			{"NaNP", func(o *Options) { o.P = math.NaN() }},
			{"UnknownAggregation", func(o *Options) { o.Aggregation = aggregate.Method(99) }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := New(tt.modify)
				require.Error(t, err)

				var optErr *ErrInvalidOption
				assert.ErrorAs(t, err, &optErr)
			})
		}
	})
}

func TestRegressorPredict(t *testing.T) {
	t.Run("MeanOverWindow", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 2
			o.MaxWindowSize = 3
		})
		require.NoError(t, err)

		// The first sample is evicted; the window holds x=2,3,4.
		knn.Learn(feature.Features{"x": 1}, 10).
			Learn(feature.Features{"x": 2}, 20).
			Learn(feature.Features{"x": 3}, 30).
			Learn(feature.Features{"x": 4}, 40)

		y, err := knn.Predict(feature.Features{"x": 3.5})
		require.NoError(t, err)
		assert.InDelta(t, 35, y, 1e-12)
	})

	t.Run("EvictedSamplesDoNotVote", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 2
			o.MaxWindowSize = 3
		})
		require.NoError(t, err)

		knn.Learn(feature.Features{"x": 1}, 10).
			Learn(feature.Features{"x": 2}, 20).
			Learn(feature.Features{"x": 3}, 30).
			Learn(feature.Features{"x": 4}, 40)

		// x=1 is gone, so the neighbors of 1.0 are x=2 and x=3.
		y, err := knn.Predict(feature.Features{"x": 1})
		require.NoError(t, err)
		assert.InDelta(t, 25, y, 1e-12)
	})

	t.Run("Median", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 3
			o.MaxWindowSize = 3
			o.Aggregation = aggregate.Median
		})
		require.NoError(t, err)

		// After eviction the window holds x=2,3,4 with targets 20,30,40.
		knn.Learn(feature.Features{"x": 1}, 10).
			Learn(feature.Features{"x": 2}, 20).
			Learn(feature.Features{"x": 3}, 30).
			Learn(feature.Features{"x": 4}, 40)

		y, err := knn.Predict(feature.Features{"x": 3})
		require.NoError(t, err)
		assert.InDelta(t, 30, y, 1e-12)
	})

	t.Run("WeightedMean", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 2
			o.MaxWindowSize = 10
			o.Aggregation = aggregate.WeightedMean
		})
		require.NoError(t, err)

		// Distances 1 and 3 from the query give weights 0.75 and 0.25.
		knn.Learn(feature.Features{"x": 1}, 100).
			Learn(feature.Features{"x": 5}, 200)

		y, err := knn.Predict(feature.Features{"x": 2})
		require.NoError(t, err)
		assert.InDelta(t, 125, y, 1e-12)
	})

	t.Run("WeightedMeanExactMatches", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 2
			o.MaxWindowSize = 10
			o.Aggregation = aggregate.WeightedMean
		})
		require.NoError(t, err)

		// Both neighbors coincide with the query; weights degenerate to
		// uniform.
		knn.Learn(feature.Features{"x": 2}, 10).
			Learn(feature.Features{"x": 2}, 30)

		y, err := knn.Predict(feature.Features{"x": 2})
		require.NoError(t, err)
		assert.InDelta(t, 20, y, 1e-12)
	})

	t.Run("InsufficientData", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 3
			o.MaxWindowSize = 10
		})
		require.NoError(t, err)

		_, err = knn.Predict(feature.Features{"x": 1})
		assert.ErrorIs(t, err, ErrInsufficientData)

		knn.Learn(feature.Features{"x": 1}, 1).
			Learn(feature.Features{"x": 2}, 2)

		_, err = knn.Predict(feature.Features{"x": 1})
		assert.ErrorIs(t, err, ErrInsufficientData)

		knn.Learn(feature.Features{"x": 3}, 3)

		y, err := knn.Predict(feature.Features{"x": 2})
		require.NoError(t, err)
		assert.InDelta(t, 2, y, 1e-12)
	})

	t.Run("NeighborsExceedingCapacityNeverPredicts", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 5
			o.MaxWindowSize = 3
		})
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			knn.Learn(feature.Features{"x": float64(i)}, float64(i))
		}

		_, err = knn.Predict(feature.Features{"x": 1})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("TiesPreferOlderSamples", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 1
			o.MaxWindowSize = 10
		})
		require.NoError(t, err)

		// Both samples sit at distance 1 from the query.
		knn.Learn(feature.Features{"x": 0}, 111).
			Learn(feature.Features{"x": 2}, 222)

		y, err := knn.Predict(feature.Features{"x": 1})
		require.NoError(t, err)
		assert.InDelta(t, 111, y, 1e-12)
	})

	t.Run("RepeatedQueriesAgree", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 3
			o.MaxWindowSize = 50
		})
		require.NoError(t, err)

		rng := testutil.NewRNG(11)
		for i := 0; i < 50; i++ {
			knn.Learn(rng.Features("a", "b"), rng.Float64()*100)
		}

		q := feature.Features{"a": 0.5, "b": 0.5}

		first, err := knn.Predict(q)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			again, err := knn.Predict(q)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("ManhattanDistance", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 1
			o.MaxWindowSize = 10
			o.P = 1
		})
		require.NoError(t, err)

		// Under Manhattan the diagonal point is farther than the axis
		// point; under Euclidean it would be nearer.
		knn.Learn(feature.Features{"a": 1.2, "b": 1.2}, 1).
			Learn(feature.Features{"a": 2.2, "b": 0}, 2)

		y, err := knn.Predict(feature.Features{"a": 0, "b": 0})
		require.NoError(t, err)
		assert.InDelta(t, 2, y, 1e-12)
	})
}

func TestRegressorFeatureSpaceGrowth(t *testing.T) {
	t.Run("NewNamesWidenOlderSamples", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 1
			o.MaxWindowSize = 10
		})
		require.NoError(t, err)

		knn.Learn(feature.Features{"a": 1}, 1).
			Learn(feature.Features{"a": 2}, 2).
			Learn(feature.Features{"a": 1, "b": 5}, 3)

		// Older samples count as zero on b, so they are far from the
		// widened query.
		y, err := knn.Predict(feature.Features{"a": 1, "b": 5})
		require.NoError(t, err)
		assert.InDelta(t, 3, y, 1e-12)

		// A query without b still lands on the matching older sample.
		y, err = knn.Predict(feature.Features{"a": 2})
		require.NoError(t, err)
		assert.InDelta(t, 2, y, 1e-12)
	})

	t.Run("QueryMayIntroduceNames", func(t *testing.T) {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 2
			o.MaxWindowSize = 10
		})
		require.NoError(t, err)

		knn.Learn(feature.Features{"a": 1}, 10).
			Learn(feature.Features{"a": 3}, 30)

		// The unseen name widens the space mid-query; stored samples are
		// zero on it.
		y, err := knn.Predict(feature.Features{"a": 2, "zz": 0})
		require.NoError(t, err)
		assert.InDelta(t, 20, y, 1e-12)
	})

	t.Run("SharedRegistryAlignsEstimators", func(t *testing.T) {
		reg := feature.NewRegistry()

		left, err := New(func(o *Options) {
			o.NNeighbors = 1
			o.Registry = reg
		})
		require.NoError(t, err)

		right, err := New(func(o *Options) {
			o.NNeighbors = 1
			o.Registry = reg
		})
		require.NoError(t, err)

		left.Learn(feature.Features{"a": 1}, 1)
		right.Learn(feature.Features{"b": 1}, 2)

		assert.Same(t, reg, left.Registry())
		assert.Equal(t, []string{"a", "b"}, reg.Names())

		y, err := right.Predict(feature.Features{"b": 1})
		require.NoError(t, err)
		assert.InDelta(t, 2, y, 1e-12)
	})
}

func TestRegressorLeafSizeInvariance(t *testing.T) {
	// Identical streams through different leaf sizes must yield identical
	// predictions.
	rng := testutil.NewRNG(23)

	type sample struct {
		x feature.Features
		y float64
	}

	samples := make([]sample, 120)
	for i := range samples {
		samples[i] = sample{
			x: rng.Features("a", "b", "c"),
			y: rng.Float64() * 100,
		}
	}

	queries := make([]feature.Features, 15)
	for i := range queries {
		queries[i] = rng.Features("a", "b", "c")
	}

	predict := func(leafSize int) []float64 {
		knn, err := New(func(o *Options) {
			o.NNeighbors = 5
			o.MaxWindowSize = 100
			o.LeafSize = leafSize
		})
		require.NoError(t, err)

		for _, s := range samples {
			knn.Learn(s.x, s.y)
		}

		out := make([]float64, len(queries))
		for i, q := range queries {
			y, err := knn.Predict(q)
			require.NoError(t, err)
			out[i] = y
		}

		return out
	}

	want := predict(1)
	for _, leafSize := range []int{2, 7, 30, 500} {
		assert.Equal(t, want, predict(leafSize), "leafSize=%d", leafSize)
	}
}

func TestRegressorLearnPredictInterleaved(t *testing.T) {
	knn, err := New(func(o *Options) {
		o.NNeighbors = 1
		o.MaxWindowSize = 2
	})
	require.NoError(t, err)

	knn.Learn(feature.Features{"x": 0}, 5)

	y, err := knn.Predict(feature.Features{"x": 0})
	require.NoError(t, err)
	assert.InDelta(t, 5, y, 1e-12)

	// New samples are visible to the very next prediction.
	knn.Learn(feature.Features{"x": 10}, 7)

	y, err = knn.Predict(feature.Features{"x": 10})
	require.NoError(t, err)
	assert.InDelta(t, 7, y, 1e-12)

	// Capacity two: the third sample evicts x=0.
	knn.Learn(feature.Features{"x": 20}, 9)

	y, err = knn.Predict(feature.Features{"x": 0})
	require.NoError(t, err)
	assert.InDelta(t, 7, y, 1e-12)
}

func TestRegressorMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	knn, err := New(func(o *Options) {
		o.NNeighbors = 2
		o.MaxWindowSize = 10
		o.Metrics = metrics
	})
	require.NoError(t, err)

	_, err = knn.Predict(feature.Features{"x": 1})
	require.ErrorIs(t, err, ErrInsufficientData)

	knn.Learn(feature.Features{"x": 1}, 1).
		Learn(feature.Features{"x": 2}, 2)

	_, err = knn.Predict(feature.Features{"x": 1})
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LearnCount)
	assert.Equal(t, int64(2), stats.PredictCount)
	assert.Equal(t, int64(1), stats.PredictSkipped)
	assert.Equal(t, int64(0), stats.PredictErrors)
}

func TestRegressorSize(t *testing.T) {
	knn, err := New(func(o *Options) {
		o.NNeighbors = 1
		o.MaxWindowSize = 3
	})
	require.NoError(t, err)

	assert.Equal(t, 0, knn.Size())
	assert.Equal(t, 3, knn.Capacity())

	for i := 0; i < 5; i++ {
		knn.Learn(feature.Features{"x": float64(i)}, 0)
	}

	assert.Equal(t, 3, knn.Size())
}
