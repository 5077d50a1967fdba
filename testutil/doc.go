// Package testutil provides testing utilities for streamknn.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible random vectors and
// feature maps.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformVectors(200, 4)           // uniform [0, 1)
//	points = rng.UniformRangeVectors(200, 4, -10, 10)
//
// # Random Feature Maps
//
//	x := rng.Features("rooms", "area")
package testutil
