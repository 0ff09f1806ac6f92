// Package trans holds the mapping rules every backend shares: transformer
// arity validation, primary-carrier election, generator-like vs link-like
// classification, capacity normalization (no backend solves with literal
// infinities), and the deterministic scalar folds used when a backend cannot
// represent canonical semantics exactly (geometric-mean efficiency collapse,
// per-carrier cost accumulation).
//
// Everything here is a pure function over core values. Structural
// incompatibilities are sentinel errors wrapped in ComponentError so callers
// learn both which rule failed (errors.Is) and which component triggered it;
// lossy approximations never error — backends record those on their
// diag.Collector.
//
// # Primary carrier
//
// Multi-output transformers need one output elected as the capacity and cost
// reference. The election is lexicographic over carrier names, so it is
// stable across runs and identical in the forward and reverse direction:
// extraction re-derives secondary values with the same ratios translation
// used.
//
// Errors:
//
//	ErrMultipleInputs    - transformer declares more than one input.
//	ErrNoInput           - transformer declares no input.
//	ErrNoOutputs         - transformer declares no outputs.
//	ErrTooManyOutputs    - transformer declares more than three outputs.
//	ErrDuplicateCarrier  - two outputs share a carrier name.
//	ErrUnsupportedKind   - component kind not expressible on a backend.
//	ErrInfiniteNonConvex - infinite capacity combined with on/off behavior.
package trans
