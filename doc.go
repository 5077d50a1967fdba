// Package streamknn provides an online k-nearest-neighbors regressor for
// streaming data.
//
// The regressor learns one labeled observation at a time and keeps only the
// most recent ones in a sliding window, so memory stays bounded no matter
// how long the stream runs and predictions track drifting data.
// Observations are free-form name/value maps; names never seen before
// simply widen the feature space, and older samples count as zero on the
// new coordinates.
//
// Predictions retrieve the k stored samples nearest to the query under a
// Minkowski distance and aggregate their targets with the configured
// method (mean, median or distance-weighted mean). Retrieval is exact: a
// kd-tree with configurable leaf size accelerates the search without ever
// changing its results.
//
// # Quick Start
//
//	knn, err := streamknn.New(func(o *streamknn.Options) {
//	    o.NNeighbors = 3
//	    o.MaxWindowSize = 500
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	knn.Learn(feature.Features{"x": 1}, 10).
//	    Learn(feature.Features{"x": 2}, 20).
//	    Learn(feature.Features{"x": 3}, 30)
//
//	y, err := knn.Predict(feature.Features{"x": 2.5})
//
// Until the window holds at least NNeighbors samples, Predict returns
// ErrInsufficientData:
//
//	if errors.Is(err, streamknn.ErrInsufficientData) {
//	    // still warming up
//	}
//
// # Progressive Evaluation
//
// The evaluate package scores a model on a stream by predicting each sample
// before learning from it:
//
//	mae := evaluate.NewMAE()
//	err := evaluate.Progressive(stream.Open("data.csv.gz", "target"), knn, mae)
package streamknn
