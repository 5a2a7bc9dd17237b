package algorithm

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

type IntersectionType int

const (
	NoIntersection IntersectionType = iota
	PointIntersection
	// The segments overlap along a shared stretch. The two intersection
	// points are the ends of that stretch.
	CollinearIntersection
)

func (t IntersectionType) String() string {
	switch t {
	case NoIntersection:
		return "no intersection"
	case PointIntersection:
		return "point intersection"
	case CollinearIntersection:
		return "collinear intersection"
	}
	return fmt.Sprintf("IntersectionType(%d)", int(t))
}

// A LineIntersector computes the intersection of two segments, or of a point
// and a segment, and holds the result until the next computation. It is not
// safe to share one between goroutines.
type LineIntersector interface {
	ComputeIntersection(p1, p2, q1, q2 orb.Point)
	// Point tests only ever answer whether p lies on the segment.
	ComputePointIntersection(p, p1, p2 orb.Point)

	Result() IntersectionType
	HasIntersection() bool
	IntersectionNum() int
	Intersection(i int) orb.Point
	IsProper() bool
	IsCollinear() bool
	// Edge distance of intersection intIndex along input segment segIndex (0
	// for p, 1 for q).
	EdgeDistance(segIndex, intIndex int) float64
	IsIntersection(p orb.Point) bool
}

// An Estimator produces a usable point when the intersection formula cannot
// represent the answer.
type Estimator func(p1, p2, q1, q2 orb.Point) orb.Point

// RobustLineIntersector uses orientation tests to classify the segments, and
// only computes coordinates for proper crossings.
type RobustLineIntersector struct {
	Precision PrecisionModel
	Fallback  Estimator

	result     IntersectionType
	inputLines [2][2]orb.Point
	intPt      [2]orb.Point
	isProper   bool
}

var _ LineIntersector = (*RobustLineIntersector)(nil)

func NewRobustLineIntersector(pm PrecisionModel) *RobustLineIntersector {
	return &RobustLineIntersector{Precision: pm, Fallback: CentralEndpoint}
}

func (li *RobustLineIntersector) Result() IntersectionType { return li.result }
func (li *RobustLineIntersector) HasIntersection() bool    { return li.result != NoIntersection }
func (li *RobustLineIntersector) IsProper() bool           { return li.HasIntersection() && li.isProper }
func (li *RobustLineIntersector) IsCollinear() bool        { return li.result == CollinearIntersection }
func (li *RobustLineIntersector) Intersection(i int) orb.Point {
	return li.intPt[i]
}

func (li *RobustLineIntersector) IntersectionNum() int {
	switch li.result {
	case PointIntersection:
		return 1
	case CollinearIntersection:
		return 2
	}
	return 0
}

func (li *RobustLineIntersector) IsIntersection(p orb.Point) bool {
	for i := 0; i < li.IntersectionNum(); i++ {
		if li.intPt[i] == p {
			return true
		}
	}
	return false
}

func (li *RobustLineIntersector) EdgeDistance(segIndex, intIndex int) float64 {
	seg := li.inputLines[segIndex]
	return EdgeDistance(li.intPt[intIndex], seg[0], seg[1])
}

func (li *RobustLineIntersector) ComputePointIntersection(p, p1, p2 orb.Point) {
	li.isProper = false
	li.result = NoIntersection
	if !inEnvelope(p, p1, p2) {
		return
	}
	if Orientation(p1, p2, p) == Collinear && Orientation(p2, p1, p) == Collinear {
		li.isProper = p != p1 && p != p2
		li.intPt[0] = p
		li.result = PointIntersection
	}
}

func (li *RobustLineIntersector) ComputeIntersection(p1, p2, q1, q2 orb.Point) {
	li.inputLines = [2][2]orb.Point{{p1, p2}, {q1, q2}}
	li.result = li.computeIntersect(p1, p2, q1, q2)
}

func (li *RobustLineIntersector) computeIntersect(p1, p2, q1, q2 orb.Point) IntersectionType {
	li.isProper = false

	if !envelopesIntersect(p1, p2, q1, q2) {
		return NoIntersection
	}

	// Both q points on the same side of p rules out an intersection
	pq1 := Orientation(p1, p2, q1)
	pq2 := Orientation(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		return NoIntersection
	}
	qp1 := Orientation(q1, q2, p1)
	qp2 := Orientation(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		return NoIntersection
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return li.computeCollinearIntersection(p1, p2, q1, q2)
	}

	// At least one endpoint lies on the other segment. Pick it exactly rather
	// than computing it, so that shared vertices stay bit-identical.
	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		switch {
		case p1 == q1 || p1 == q2:
			li.intPt[0] = p1
		case p2 == q1 || p2 == q2:
			li.intPt[0] = p2
		case pq1 == 0:
			li.intPt[0] = q1
		case pq2 == 0:
			li.intPt[0] = q2
		case qp1 == 0:
			li.intPt[0] = p1
		case qp2 == 0:
			li.intPt[0] = p2
		}
		return PointIntersection
	}

	li.isProper = true
	li.intPt[0] = li.intersection(p1, p2, q1, q2)
	return PointIntersection
}

func (li *RobustLineIntersector) computeCollinearIntersection(p1, p2, q1, q2 orb.Point) IntersectionType {
	q1InP := inEnvelope(q1, p1, p2)
	q2InP := inEnvelope(q2, p1, p2)
	p1InQ := inEnvelope(p1, q1, q2)
	p2InQ := inEnvelope(p2, q1, q2)

	set := func(a, b orb.Point) {
		li.intPt[0] = a
		li.intPt[1] = b
	}

	switch {
	case q1InP && q2InP:
		set(q1, q2)
		return CollinearIntersection
	case p1InQ && p2InQ:
		set(p1, p2)
		return CollinearIntersection
	case q1InP && p1InQ:
		set(q1, p1)
		if q1 == p1 && !q2InP && !p2InQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q1InP && p2InQ:
		set(q1, p2)
		if q1 == p2 && !q2InP && !p1InQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2InP && p1InQ:
		set(q2, p1)
		if q2 == p1 && !q1InP && !p2InQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2InP && p2InQ:
		set(q2, p2)
		if q2 == p2 && !q1InP && !p1InQ {
			return PointIntersection
		}
		return CollinearIntersection
	}
	return NoIntersection
}

// intersection computes the crossing point of two properly intersecting
// segments. The fallback only runs when the result is not a finite number,
// which happens for nearly parallel input.
func (li *RobustLineIntersector) intersection(p1, p2, q1, q2 orb.Point) orb.Point {
	intPt, ok := homogeneousIntersection(p1, p2, q1, q2)
	if !ok {
		fallback := li.Fallback
		if fallback == nil {
			fallback = CentralEndpoint
		}
		intPt = fallback(p1, p2, q1, q2)
	}
	return li.Precision.MakePrecise(intPt)
}

// The lines are translated so the middle of the overlap of the two envelopes
// is at the origin. This keeps the magnitudes down and the result accurate.
func homogeneousIntersection(p1, p2, q1, q2 orb.Point) (orb.Point, bool) {
	intMinX := math.Max(math.Min(p1[0], p2[0]), math.Min(q1[0], q2[0]))
	intMaxX := math.Min(math.Max(p1[0], p2[0]), math.Max(q1[0], q2[0]))
	intMinY := math.Max(math.Min(p1[1], p2[1]), math.Min(q1[1], q2[1]))
	intMaxY := math.Min(math.Max(p1[1], p2[1]), math.Max(q1[1], q2[1]))
	midX := (intMinX + intMaxX) / 2
	midY := (intMinY + intMaxY) / 2

	p1x, p1y := p1[0]-midX, p1[1]-midY
	p2x, p2y := p2[0]-midX, p2[1]-midY
	q1x, q1y := q1[0]-midX, q1[1]-midY
	q2x, q2y := q2[0]-midX, q2[1]-midY

	px := p1y - p2y
	py := p2x - p1x
	pw := p1x*p2y - p2x*p1y

	qx := q1y - q2y
	qy := q2x - q1x
	qw := q1x*q2y - q2x*q1y

	x := py*qw - qy*pw
	y := qx*pw - px*qw
	w := px*qy - qx*py

	xInt := x / w
	yInt := y / w
	if !isFinite(xInt) || !isFinite(yInt) {
		return orb.Point{}, false
	}
	return orb.Point{xInt + midX, yInt + midY}, true
}

// CentralEndpoint returns the input endpoint nearest the centroid of all four
// endpoints. It is an approximation, but always representable.
func CentralEndpoint(p1, p2, q1, q2 orb.Point) orb.Point {
	pts := [4]orb.Point{p1, p2, q1, q2}
	var cx, cy float64
	for _, p := range pts {
		cx += p[0]
		cy += p[1]
	}
	centroid := orb.Point{cx / 4, cy / 4}

	best := pts[0]
	bestDist := math.Inf(1)
	for _, p := range pts {
		d := math.Hypot(p[0]-centroid[0], p[1]-centroid[1])
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// EdgeDistance gives a position of p along p0->p1 that increases
// monotonically along the segment. It uses the axis with the larger extent,
// so it is not a Euclidean distance, and it is only meaningful for points
// that are actually on the segment.
func EdgeDistance(p, p0, p1 orb.Point) float64 {
	dx := math.Abs(p1[0] - p0[0])
	dy := math.Abs(p1[1] - p0[1])

	var dist float64
	switch {
	case p == p0:
		dist = 0
	case p == p1:
		dist = math.Max(dx, dy)
	default:
		pdx := math.Abs(p[0] - p0[0])
		pdy := math.Abs(p[1] - p0[1])
		if dx > dy {
			dist = pdx
		} else {
			dist = pdy
		}
		// A point that isn't p0 must not get distance zero
		if dist == 0 {
			dist = math.Max(pdx, pdy)
		}
	}
	return dist
}

func envelopesIntersect(p1, p2, q1, q2 orb.Point) bool {
	minQ := math.Min(q1[0], q2[0])
	maxQ := math.Max(q1[0], q2[0])
	minP := math.Min(p1[0], p2[0])
	maxP := math.Max(p1[0], p2[0])
	if minP > maxQ || maxP < minQ {
		return false
	}
	minQ = math.Min(q1[1], q2[1])
	maxQ = math.Max(q1[1], q2[1])
	minP = math.Min(p1[1], p2[1])
	maxP = math.Max(p1[1], p2[1])
	return !(minP > maxQ || maxP < minQ)
}

func inEnvelope(p, e1, e2 orb.Point) bool {
	return p[0] >= math.Min(e1[0], e2[0]) && p[0] <= math.Max(e1[0], e2[0]) &&
		p[1] >= math.Min(e1[1], e2[1]) && p[1] <= math.Max(e1[1], e2[1])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
