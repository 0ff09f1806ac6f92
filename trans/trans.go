package trans

import (
	"math"
	"sort"

	"github.com/katalvlaran/fluxcast/core"
)

// maxOutputs is the largest transformer arity with a safe deterministic
// primary-carrier scheme.
const maxOutputs = 3

// ValidateTransformer enforces the arity rules shared by every backend:
// exactly one input, one to three outputs, unique carriers. It must be
// called before any backend entity is created.
func ValidateTransformer(t core.Transformer) error {
	switch {
	case len(t.Inputs) == 0:
		return componentErr(t.U, ErrNoInput)
	case len(t.Inputs) > 1:
		return componentErr(t.U, ErrMultipleInputs)
	case len(t.Outputs) == 0:
		return componentErr(t.U, ErrNoOutputs)
	case len(t.Outputs) > maxOutputs:
		return componentErr(t.U, ErrTooManyOutputs)
	}

	seen := make(map[string]struct{}, len(t.Outputs))
	for _, out := range t.Outputs {
		if _, dup := seen[out.Carrier]; dup {
			return componentErr(t.U, ErrDuplicateCarrier)
		}
		seen[out.Carrier] = struct{}{}
	}

	return nil
}

// PrimaryCarrier elects the output with the lexicographically smallest
// carrier name as the primary interface and returns the remaining outputs
// sorted by carrier. The election is stable, so forward translation and
// reverse extraction always agree on the reference.
func PrimaryCarrier(t core.Transformer) (primary core.Output, secondaries []core.Output, err error) {
	if err = ValidateTransformer(t); err != nil {
		return core.Output{}, nil, err
	}

	sorted := make([]core.Output, len(t.Outputs))
	copy(sorted, t.Outputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Carrier < sorted[j].Carrier })

	return sorted[0], sorted[1:], nil
}

// Class partitions transformers into the two backend modeling families.
type Class int

const (
	// GeneratorLike marks single-output transformers a backend may collapse
	// into a simplified producing entity.
	GeneratorLike Class = iota
	// LinkLike marks transformers that must keep explicit input and output
	// interfaces (multi-output, or tagged chp).
	LinkLike
)

// Classify applies the deterministic classification rule: single-output
// transformers are GeneratorLike unless their node-type tag is "chp";
// everything else is LinkLike. Assumes ValidateTransformer passed.
func Classify(t core.Transformer) Class {
	if len(t.Outputs) == 1 && t.U.NodeType != "chp" {
		return GeneratorLike
	}

	return LinkLike
}

// CapacitySpec is the backend-neutral normalized form of an edge's capacity:
// no literal infinities, expansion expressed as explicit bounds.
type CapacitySpec struct {
	// Existing is the finite capacity already in place.
	Existing float64

	// Expandable reports whether capacity is a decision variable.
	Expandable bool

	// ExpansionMin, ExpansionMax and ExpansionCost bound and price the
	// expansion when Expandable is true. ExpansionMax is only meaningful
	// when ExpansionBounded is true.
	ExpansionMin  float64
	ExpansionMax  float64
	ExpansionCost float64

	// ExpansionBounded reports whether ExpansionMax carries a finite bound.
	ExpansionBounded bool
}

// NormalizeCapacity converts an edge's capacity parameters into a
// CapacitySpec every backend can represent.
//
// The one policy decision lives here: an infinite maximum capacity combined
// with a finite expansion cost becomes zero existing capacity plus an
// unbounded-above expandable spec (approx=true), because no backend solves
// with literal infinities. An infinite capacity combined with on/off
// behavior is contradictory and fails.
func NormalizeCapacity(u core.Uid, e core.Edge) (spec CapacitySpec, approx bool, err error) {
	if e.Unbounded() && e.NonConvex != nil {
		return CapacitySpec{}, false, componentErr(u, ErrInfiniteNonConvex)
	}

	if e.Expandable() {
		spec = CapacitySpec{
			Existing:         e.Installed,
			Expandable:       true,
			ExpansionMin:     e.Expansion.Min,
			ExpansionMax:     e.Expansion.Max,
			ExpansionCost:    e.Expansion.Cost,
			ExpansionBounded: true,
		}
		if math.IsInf(spec.ExpansionMax, 1) {
			spec.ExpansionMax = 0
			spec.ExpansionBounded = false
			approx = true
		}

		return spec, approx, nil
	}

	if e.Unbounded() {
		// Infinite firm capacity: representable only as "expandable from
		// zero at zero cost", never as a literal infinity.
		return CapacitySpec{Expandable: true}, true, nil
	}

	existing := e.Installed
	if existing == 0 {
		existing = e.MaxCapacity
	}

	return CapacitySpec{Existing: existing}, false, nil
}

// GeometricMean collapses an asymmetric efficiency pair into the single
// value backends with one storage efficiency use for both directions.
func GeometricMean(a, b float64) float64 {
	return math.Sqrt(a * b)
}

// SecondaryRatio returns the fixed ratio of a secondary carrier relative to
// the primary: one unit on the primary interface implies ratio units on the
// secondary. Capacity and expansion bounds for the secondary divide through
// this ratio.
func SecondaryRatio(primary, secondary core.Output) float64 {
	return secondary.Efficiency / primary.Efficiency
}

// AccumulateOnPrimary folds per-carrier cost and emission rates onto the
// primary interface for backends that cannot price carriers independently.
// The fold is a plain sum and therefore deterministic regardless of output
// order; it is documented as lexicographic because PrimaryCarrier hands the
// outputs over sorted.
func AccumulateOnPrimary(primary core.Output, secondaries []core.Output) (cost, emission float64) {
	cost, emission = primary.Flow.Cost, primary.Flow.Emission
	for _, s := range secondaries {
		cost += s.Flow.Cost
		emission += s.Flow.Emission
	}

	return cost, emission
}
