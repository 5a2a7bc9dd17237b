package algorithm

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Location of a point relative to an area or line.
type Location int

const (
	None Location = iota
	Interior
	Boundary
	Exterior
)

func (l Location) String() string {
	switch l {
	case None:
		return "-"
	case Interior:
		return "i"
	case Boundary:
		return "b"
	case Exterior:
		return "e"
	}
	return fmt.Sprintf("Location(%d)", int(l))
}

// LocateInRing counts crossings of a ray running from p towards +x. The ring
// must be closed. Points on the ring are Boundary.
func LocateInRing(p orb.Point, ring []orb.Point) Location {
	crossings := 0
	for i := 1; i < len(ring); i++ {
		p1 := ring[i]
		p2 := ring[i-1]

		// Segment entirely to the left of the ray's origin
		if p1[0] < p[0] && p2[0] < p[0] {
			continue
		}
		if p == p2 {
			return Boundary
		}
		// Horizontal segment at the ray's height either contains p or can be
		// ignored
		if p1[1] == p[1] && p2[1] == p[1] {
			minX, maxX := p1[0], p2[0]
			if minX > maxX {
				minX, maxX = maxX, minX
			}
			if p[0] >= minX && p[0] <= maxX {
				return Boundary
			}
			continue
		}
		// Half-open rule on y so that a vertex at the ray's height is counted
		// once
		if (p1[1] > p[1] && p2[1] <= p[1]) || (p2[1] > p[1] && p1[1] <= p[1]) {
			orient := Orientation(p1, p2, p)
			if orient == Collinear {
				return Boundary
			}
			if p2[1] < p1[1] {
				orient = -orient
			}
			if orient == Counterclockwise {
				crossings++
			}
		}
	}
	if crossings%2 == 1 {
		return Interior
	}
	return Exterior
}

func IsInRing(p orb.Point, ring []orb.Point) bool {
	return LocateInRing(p, ring) != Exterior
}
