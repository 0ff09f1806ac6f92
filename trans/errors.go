package trans

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fluxcast/core"
)

// Structural sentinels. A structural error always aborts translation; it is
// never downgraded to a diagnostic.
var (
	// ErrMultipleInputs indicates a transformer with more than one input.
	// No deterministic primary-carrier scheme covers multi-input conversion.
	ErrMultipleInputs = errors.New("trans: multi-input transformers are not supported")

	// ErrNoInput indicates a transformer without an input bus.
	ErrNoInput = errors.New("trans: transformer has no input")

	// ErrNoOutputs indicates a transformer without outputs.
	ErrNoOutputs = errors.New("trans: transformer has no outputs")

	// ErrTooManyOutputs indicates a transformer with more than three outputs.
	ErrTooManyOutputs = errors.New("trans: transformers with more than three outputs are not supported")

	// ErrDuplicateCarrier indicates two outputs sharing a carrier name, which
	// would make primary-carrier election ambiguous.
	ErrDuplicateCarrier = errors.New("trans: duplicate output carrier")

	// ErrUnsupportedKind indicates a component kind the target backend has no
	// concept for (e.g. a chp transformer on a backend without CHP).
	ErrUnsupportedKind = errors.New("trans: component kind not supported by backend")

	// ErrInfiniteNonConvex indicates an infinite nominal capacity combined
	// with an on/off constraint — a contradictory numeric request.
	ErrInfiniteNonConvex = errors.New("trans: infinite capacity with on/off constraint")
)

// ComponentError attaches the offending component to a structural sentinel.
// errors.Is resolves to the wrapped sentinel.
type ComponentError struct {
	Component core.Uid
	Err       error
}

// Error renders "sentinel text (component <name>)".
func (e ComponentError) Error() string {
	return fmt.Sprintf("%v (component %s)", e.Err, e.Component.Name)
}

// Unwrap exposes the underlying sentinel for errors.Is / errors.As.
func (e ComponentError) Unwrap() error { return e.Err }

// componentErr wraps err with the component identity.
func componentErr(u core.Uid, err error) error {
	return ComponentError{Component: u, Err: err}
}
