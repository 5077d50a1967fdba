// Package feature turns named-feature observations into fixed-width vectors.
//
// A Registry assigns every feature name a stable position in an append-only
// ordering, and a Codec projects observations onto that ordering. Vectors
// projected at different times may differ in width; Pad widens older vectors
// so they compare under a common width.
package feature

// Features is a single observation: a mapping from feature name to value.
type Features map[string]float64

// Pad returns v widened to the given width with zero-valued trailing
// coordinates. Vectors already at or beyond the width are returned as is.
// Zero padding is exact re-projection because the ordering only ever grows
// at the end.
func Pad(v []float64, width int) []float64 {
	if len(v) >= width {
		return v
	}

	out := make([]float64, width)
	copy(out, v)

	return out
}
