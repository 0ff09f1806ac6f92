// Package core defines the canonical, backend-independent model of an energy
// supply network: the Uid identity scheme, the node kinds (Bus, Source, Sink,
// Transformer, Storage, Connector), the Edge flow parameters, and the
// EnergySystem container.
//
// The canonical model is built once by an external parser and is read-only
// for the rest of the pipeline: forward translators consume it, result
// extractors reconstruct it. Nothing in this package mutates a node after it
// has been added to an EnergySystem.
//
// # Identity
//
// A Uid carries everything needed to identify a component globally: name,
// coordinates, region, sector, carrier, a free-form node-type tag, the
// component kind, and an origin tag separating canonical components from
// synthetic ones a backend mapping may introduce. Uid.String and ParseUid
// are exact inverses; backend networks only carry string names, so this
// round-trip is what lets extractors recover identity without access to the
// canonical model.
//
// # Conventions
//
//   - Sign: inflow to a sink is negative, outflow from a source is positive.
//     Backends may invert this; extractors normalize back.
//   - Ordering: every accessor that enumerates nodes returns them sorted
//     lexicographically by uid string, so repeated translations of the same
//     model are structurally identical.
//   - Capacity: MaxCapacity may be math.Inf(1); translators are responsible
//     for normalizing infinities into expandable representations.
//
// Errors:
//
//	ErrNilNode        - nil node passed to AddNode.
//	ErrDuplicateNode  - a node with the same uid string already exists.
//	ErrUidSegments    - serialized uid does not have the expected segments.
//	ErrUidSeparator   - a uid field contains the separator rune.
//	ErrEmptyName      - uid name is the empty string.
//	ErrUnknownKind    - unrecognized component-kind tag.
//	ErrUnknownOrigin  - unrecognized origin tag.
//	ErrUnknownBus     - a component references a bus uid that does not exist.
//	ErrNotABus        - a component references a node that is not a Bus.
//	ErrCapacityBounds - MinCapacity exceeds MaxCapacity, or negative bounds.
//	ErrBadEfficiency  - efficiency outside (0, 1].
//	ErrSeriesLength   - a time series does not match the system's timesteps.
package core
