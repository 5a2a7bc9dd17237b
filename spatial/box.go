package spatial

import (
	"math"

	"github.com/paulmach/orb"
)

func overlap(a, b orb.Bound) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1]
}

func combine(a, b orb.Bound) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1])},
		Max: orb.Point{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1])},
	}
}

func area(b orb.Bound) float64 {
	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1])
}

// enlargement is how much the area of existing grows if it has to cover box.
func enlargement(box, existing orb.Bound) float64 {
	return area(combine(box, existing)) - area(existing)
}

func calculateBound(n *node) orb.Bound {
	box := n.entries[0].box
	for i := 1; i < n.numEntries; i++ {
		box = combine(box, n.entries[i].box)
	}
	return box
}
