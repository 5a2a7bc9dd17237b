package algorithm

import (
	"math"

	"github.com/paulmach/orb"
)

// InteriorAngle is the angle at vertex between the legs to a and c, in
// degrees. A straight pass through the vertex is 180.
func InteriorAngle(a, vertex, c orb.Point) float64 {
	ax, ay := a[0]-vertex[0], a[1]-vertex[1]
	cx, cy := c[0]-vertex[0], c[1]-vertex[1]
	if (ax == 0 && ay == 0) || (cx == 0 && cy == 0) {
		return 0
	}
	cross := ax*cy - ay*cx
	dot := ax*cx + ay*cy
	return math.Abs(math.Atan2(cross, dot)) * 180 / math.Pi
}

func SegmentBound(p0, p1 orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(p0[0], p1[0]), math.Min(p0[1], p1[1])},
		Max: orb.Point{math.Max(p0[0], p1[0]), math.Max(p0[1], p1[1])},
	}
}

func PointsBound(pts []orb.Point) orb.Bound {
	if len(pts) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.Extend(p)
	}
	return b
}

// RemoveRepeatedPoints drops consecutive duplicates. The input is never
// modified.
func RemoveRepeatedPoints(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func IsClosed(pts []orb.Point) bool {
	return len(pts) > 0 && pts[0] == pts[len(pts)-1]
}

func IsValidCoordinate(p orb.Point) bool {
	return isFinite(p[0]) && isFinite(p[1])
}
