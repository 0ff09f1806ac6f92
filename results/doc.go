// Package results defines the uniform result schema every backend extractor
// produces, so outcomes of structurally different backends can be compared
// component by component.
//
// All maps are keyed by canonical uid strings (or From/To uid-string pairs
// for edges); no backend-native object ever leaks through this boundary.
// Signs follow the canonical convention: inflow ≤ 0, outflow ≥ 0.
//
// A Resultier builds its Result exactly once at construction and hands out
// the memoized maps afterwards, so repeated accessor calls on the same
// optimized network are guaranteed identical.
package results
