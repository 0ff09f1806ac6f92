package core

import (
	"fmt"
	"math"
)

// Edge carries the flow parameters of one directed attachment between a
// component and a bus: capacity bounds, specific cost and emission rates,
// ramping gradients, optional expansion bounds and optional on/off
// ("non-convex") behavior.
//
// Capacity semantics:
//   - Installed is the capacity already built before optimization.
//   - MinCapacity/MaxCapacity bound the dispatched flow per timestep;
//     MaxCapacity may be math.Inf(1) for an unbounded flow.
//   - Expansion, when non-nil, makes capacity itself a decision variable.
type Edge struct {
	// Installed is the pre-optimization ("already existing") capacity.
	Installed float64

	// MinCapacity and MaxCapacity bound the flow per timestep.
	MinCapacity float64
	MaxCapacity float64

	// Cost is the specific cost per unit of flow.
	Cost float64

	// Emission is the specific emission per unit of flow.
	Emission float64

	// PositiveGradient and NegativeGradient limit per-step flow changes.
	// Zero means unconstrained.
	PositiveGradient float64
	NegativeGradient float64

	// Expansion, when non-nil, allows the capacity to grow within bounds at
	// a price.
	Expansion *Expansion

	// NonConvex, when non-nil, adds on/off commitment behavior.
	NonConvex *NonConvex
}

// Expansion prices and bounds a capacity-expansion decision.
type Expansion struct {
	// Min and Max bound the post-expansion capacity.
	Min float64
	Max float64

	// Cost is the price per unit of added capacity.
	Cost float64
}

// NonConvex describes on/off commitment behavior of a flow.
type NonConvex struct {
	// StartupCost and ShutdownCost are charged on state transitions.
	StartupCost  float64
	ShutdownCost float64

	// MinUptime and MinDowntime are minimum run/rest lengths in timesteps.
	MinUptime   int
	MinDowntime int

	// InitialStatus reports whether the component starts committed.
	InitialStatus bool
}

// Expandable reports whether the edge requests capacity expansion.
func (e Edge) Expandable() bool {
	return e.Expansion != nil
}

// Unbounded reports whether the edge's maximum capacity is infinite.
func (e Edge) Unbounded() bool {
	return math.IsInf(e.MaxCapacity, 1)
}

// Validate checks the edge's numeric invariants. Structural checks that
// depend on a backend (infinite capacity combined with NonConvex) live in
// the trans package.
func (e Edge) Validate() error {
	if e.Installed < 0 || e.MinCapacity < 0 || e.MaxCapacity < 0 {
		return fmt.Errorf("%w: negative capacity", ErrCapacityBounds)
	}
	if e.MinCapacity > e.MaxCapacity {
		return fmt.Errorf("%w: min %g > max %g", ErrCapacityBounds, e.MinCapacity, e.MaxCapacity)
	}
	if e.Expansion != nil {
		if e.Expansion.Min < 0 || e.Expansion.Max < 0 {
			return fmt.Errorf("%w: negative expansion bound", ErrCapacityBounds)
		}
		if e.Expansion.Min > e.Expansion.Max {
			return fmt.Errorf("%w: expansion min %g > max %g", ErrCapacityBounds, e.Expansion.Min, e.Expansion.Max)
		}
	}

	return nil
}
