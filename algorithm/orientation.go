package algorithm

import (
	"math"
	"math/big"

	"github.com/paulmach/orb"
)

const (
	Clockwise        = -1
	Collinear        = 0
	Counterclockwise = 1
)

// Bound on the relative error of the float determinant. Outside of it the
// sign is trustworthy; inside we redo the arithmetic exactly.
const orientationErrBound = 1e-15

// Orientation reports which side of the directed line p1->p2 the point q lies
// on: Counterclockwise (left), Clockwise (right) or Collinear.
func Orientation(p1, p2, q orb.Point) int {
	detLeft := (p1[0] - q[0]) * (p2[1] - q[1])
	detRight := (p1[1] - q[1]) * (p2[0] - q[0])
	det := detLeft - detRight

	detSum := math.Abs(detLeft) + math.Abs(detRight)
	if math.Abs(det) > orientationErrBound*detSum {
		return signum(det)
	}
	if detSum == 0 {
		return Collinear
	}
	return orientationExact(p1, p2, q)
}

func orientationExact(p1, p2, q orb.Point) int {
	r := func(v float64) *big.Rat { return new(big.Rat).SetFloat64(v) }
	sub := func(a, b float64) *big.Rat { return new(big.Rat).Sub(r(a), r(b)) }

	left := new(big.Rat).Mul(sub(p1[0], q[0]), sub(p2[1], q[1]))
	right := new(big.Rat).Mul(sub(p1[1], q[1]), sub(p2[0], q[0]))
	return left.Cmp(right)
}

func signum(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// SignedArea is positive for counterclockwise rings. The ring may be open or
// closed.
func SignedArea(ring []orb.Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	// Shifting to the first point keeps the products small
	x0, y0 := ring[0][0], ring[0][1]
	var sum float64
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		sum += (a[0]-x0)*(b[1]-y0) - (b[0]-x0)*(a[1]-y0)
	}
	return sum / 2
}

func IsCCW(ring []orb.Point) bool {
	return SignedArea(ring) > 0
}

// Quadrants are numbered counterclockwise starting with NE. Directions along
// an axis go by the sign test dx >= 0, dy >= 0.
const (
	NE = iota
	NW
	SW
	SE
)

func Quadrant(dx, dy float64) int {
	if dx >= 0 {
		if dy >= 0 {
			return NE
		}
		return SE
	}
	if dy >= 0 {
		return NW
	}
	return SW
}

func QuadrantOf(p0, p1 orb.Point) int {
	return Quadrant(p1[0]-p0[0], p1[1]-p0[1])
}

// CompareDirection orders two direction vectors leaving the same origin by
// angle, counterclockwise from the positive x axis. It returns 0 only for
// vectors pointing the same way.
func CompareDirection(origin, a, b orb.Point) int {
	qa := QuadrantOf(origin, a)
	qb := QuadrantOf(origin, b)
	if qa > qb {
		return 1
	}
	if qa < qb {
		return -1
	}
	// Same quadrant: the vector to the left of the other is greater
	return Orientation(origin, b, a)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
