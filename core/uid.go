package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Sep is the fixed separator used to serialize a Uid into a flat string.
// Backend networks only carry string names, so every Uid field must survive
// a Join/Split round-trip; Validate rejects fields containing Sep.
const Sep = "/"

// uidSegments is the exact number of Sep-joined segments in a serialized Uid.
const uidSegments = 9

// ComponentKind tags the canonical kind of a component.
type ComponentKind int

const (
	// KindBus is a pure topology node connecting flows; it has no size.
	KindBus ComponentKind = iota
	// KindSource produces a carrier (outflow positive).
	KindSource
	// KindSink consumes a carrier (inflow negative).
	KindSink
	// KindTransformer converts one input carrier into 1–3 output carriers.
	KindTransformer
	// KindStorage shifts energy in time.
	KindStorage
	// KindConnector couples two buses bidirectionally, possibly with loss.
	KindConnector
)

// kindTags maps ComponentKind to its serialized tag. Order must match the
// iota block above.
var kindTags = [...]string{"bus", "source", "sink", "transformer", "storage", "connector"}

// String returns the serialized tag of k, or "unknown" for out-of-range values.
func (k ComponentKind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return "unknown"
	}

	return kindTags[k]
}

// ParseKind resolves a serialized kind tag back to its ComponentKind.
func ParseKind(tag string) (ComponentKind, error) {
	for i, t := range kindTags {
		if t == tag {
			return ComponentKind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

// Origin separates canonical components from synthetic ones a backend
// mapping introduces (for example a connector's intermediate location).
// Synthetic identities are never inferred from naming conventions; the tag
// is part of the Uid itself.
type Origin int

const (
	// OriginCanonical marks a component present in the canonical model.
	OriginCanonical Origin = iota
	// OriginSynthetic marks an auxiliary entity created during translation.
	OriginSynthetic
)

var originTags = [...]string{"canonical", "synthetic"}

// String returns the serialized tag of o.
func (o Origin) String() string {
	if o < 0 || int(o) >= len(originTags) {
		return "unknown"
	}

	return originTags[o]
}

// ParseOrigin resolves a serialized origin tag back to its Origin.
func ParseOrigin(tag string) (Origin, error) {
	for i, t := range originTags {
		if t == tag {
			return Origin(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownOrigin, tag)
}

// Uid is the globally unique, reconstructable identity of a component.
//
// The zero value is not valid; Name must be non-empty and no string field may
// contain Sep. Uid is a value type and is never mutated after construction.
type Uid struct {
	// Name is the human-chosen component name, unique within its system.
	Name string

	// Latitude and Longitude locate the component geographically.
	Latitude  float64
	Longitude float64

	// Region, Sector and Carrier classify the component.
	Region  string
	Sector  string
	Carrier string

	// NodeType is a free-form tag refining the kind (e.g. "renewable",
	// "chp"). Backends may branch on it.
	NodeType string

	// Kind is the canonical component kind.
	Kind ComponentKind

	// Origin distinguishes canonical components from synthetic entities
	// introduced by a backend mapping.
	Origin Origin
}

// String serializes u into the fixed nine-segment Sep-joined form.
// ParseUid(u.String()) == u holds for every valid Uid.
func (u Uid) String() string {
	return strings.Join([]string{
		u.Name,
		strconv.FormatFloat(u.Latitude, 'g', -1, 64),
		strconv.FormatFloat(u.Longitude, 'g', -1, 64),
		u.Region,
		u.Sector,
		u.Carrier,
		u.NodeType,
		u.Kind.String(),
		u.Origin.String(),
	}, Sep)
}

// Validate checks that u would survive a String/ParseUid round-trip.
func (u Uid) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}
	for _, f := range []string{u.Name, u.Region, u.Sector, u.Carrier, u.NodeType} {
		if strings.Contains(f, Sep) {
			return fmt.Errorf("%w: %q", ErrUidSeparator, f)
		}
	}
	if u.Kind.String() == "unknown" {
		return ErrUnknownKind
	}
	if u.Origin.String() == "unknown" {
		return ErrUnknownOrigin
	}

	return nil
}

// ParseUid reconstructs a Uid from its serialized form. It is the exact
// inverse of String and is idempotent: parsing a parsed-and-reserialized
// uid yields the same value.
func ParseUid(s string) (Uid, error) {
	parts := strings.Split(s, Sep)
	if len(parts) != uidSegments {
		return Uid{}, fmt.Errorf("%w: %q has %d segments, want %d", ErrUidSegments, s, len(parts), uidSegments)
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Uid{}, fmt.Errorf("core: uid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Uid{}, fmt.Errorf("core: uid longitude: %w", err)
	}
	kind, err := ParseKind(parts[7])
	if err != nil {
		return Uid{}, err
	}
	origin, err := ParseOrigin(parts[8])
	if err != nil {
		return Uid{}, err
	}

	u := Uid{
		Name:      parts[0],
		Latitude:  lat,
		Longitude: lon,
		Region:    parts[3],
		Sector:    parts[4],
		Carrier:   parts[5],
		NodeType:  parts[6],
		Kind:      kind,
		Origin:    origin,
	}
	if err = u.Validate(); err != nil {
		return Uid{}, err
	}

	return u, nil
}
