package core

import "errors"

// Sentinel errors for canonical-model construction and validation.
// Callers branch with errors.Is; sentinels are never wrapped with formatted
// strings at definition site.
var (
	// ErrNilNode indicates a nil Node was passed to AddNode.
	ErrNilNode = errors.New("core: nil node")

	// ErrDuplicateNode indicates a node with the same uid string already exists.
	ErrDuplicateNode = errors.New("core: duplicate node uid")

	// ErrUidSegments indicates a serialized uid does not split into the
	// expected number of segments.
	ErrUidSegments = errors.New("core: uid string has wrong segment count")

	// ErrUidSeparator indicates a uid field contains the separator rune and
	// would not round-trip through String/ParseUid.
	ErrUidSeparator = errors.New("core: uid field contains separator")

	// ErrEmptyName indicates a uid with an empty name.
	ErrEmptyName = errors.New("core: uid name is empty")

	// ErrUnknownKind indicates an unrecognized component-kind tag.
	ErrUnknownKind = errors.New("core: unknown component kind")

	// ErrUnknownOrigin indicates an unrecognized origin tag.
	ErrUnknownOrigin = errors.New("core: unknown uid origin")

	// ErrUnknownBus indicates a component references a bus uid that is not
	// part of the system.
	ErrUnknownBus = errors.New("core: referenced bus not found")

	// ErrNotABus indicates a component references a node that exists but is
	// not a Bus.
	ErrNotABus = errors.New("core: referenced node is not a bus")

	// ErrCapacityBounds indicates negative or inverted capacity bounds.
	ErrCapacityBounds = errors.New("core: invalid capacity bounds")

	// ErrBadEfficiency indicates an efficiency outside (0, 1].
	ErrBadEfficiency = errors.New("core: efficiency out of range")

	// ErrSeriesLength indicates a time series whose length does not match the
	// system's timestep count.
	ErrSeriesLength = errors.New("core: series length mismatch")
)
