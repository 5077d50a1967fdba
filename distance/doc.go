// Package distance provides the Minkowski family of vector distances.
//
// All functions assume both vectors have the same length; callers are
// responsible for projecting inputs to a common width first.
//
// # Supported Orders
//
//   - p = 1: Manhattan distance
//   - p = 2: Euclidean distance (default)
//   - p = +Inf: Chebyshev distance
//   - any other p >= 1: the general Minkowski form
//
// # Usage
//
//	fn, err := distance.Minkowski(2)
//	d := fn(a, b)
package distance
