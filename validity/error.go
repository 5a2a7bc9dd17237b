package validity

import (
	"fmt"

	"github.com/paulmach/orb"
)

type Kind int

const (
	InvalidCoordinate Kind = iota
	RingNotClosed
	TooFewPoints
	SelfIntersection
	DuplicateRings
	RingSelfIntersection
	HoleOutsideShell
	NestedHoles
	NestedShells
	DisconnectedInterior
)

var kindMessages = map[Kind]string{
	InvalidCoordinate:    "invalid coordinate",
	RingNotClosed:        "ring is not closed",
	TooFewPoints:         "too few distinct points in geometry component",
	SelfIntersection:     "self-intersection",
	DuplicateRings:       "duplicate rings",
	RingSelfIntersection: "ring self-intersection",
	HoleOutsideShell:     "hole lies outside shell",
	NestedHoles:          "holes are nested",
	NestedShells:         "nested shells",
	DisconnectedInterior: "interior is disconnected",
}

func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is one failed check. Geometry is the component the check was run
// against: a ring for ring checks, otherwise the polygon or whole input.
type Error struct {
	Kind     Kind
	Location orb.Point
	Geometry orb.Geometry
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at (%g %g)", e.Kind, e.Location[0], e.Location[1])
}
