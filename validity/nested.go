package validity

import (
	"sort"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/graph"
	"github.com/osuushi/planar/internal"
	"github.com/osuushi/planar/spatial"
	"github.com/paulmach/orb"
)

// ringIndex finds the rings whose bounds overlap a given ring, so the nesting
// checks only test pairs that could possibly be nested.
type ringIndex struct {
	tree   *spatial.RTree
	bounds []orb.Bound
}

func newRingIndex(rings []orb.Ring) *ringIndex {
	idx := &ringIndex{bounds: make([]orb.Bound, len(rings))}
	items := make([]spatial.BulkItem, 0, len(rings))
	for i, r := range rings {
		if len(r) == 0 {
			continue
		}
		idx.bounds[i] = algorithm.PointsBound(r)
		items = append(items, spatial.BulkItem{Box: idx.bounds[i], RecordID: i})
	}
	idx.tree = spatial.BulkLoad(items)
	return idx
}

// candidates are the other rings overlapping ring i, in index order.
func (idx *ringIndex) candidates(i int) []int {
	var result []int
	for _, j := range idx.tree.Query(idx.bounds[i]) {
		if j != i {
			result = append(result, j)
		}
	}
	sort.Ints(result)
	return result
}

// No hole may lie inside another hole of the same polygon. Since the rings
// were already found not to cross, any point of the inner hole that isn't a
// node decides it.
func (c *checker) checkHolesNotNested(gg *graph.GeometryGraph, polygon int, p orb.Polygon) {
	if len(p) < 3 {
		return
	}
	holes := p[1:]
	idx := newRingIndex(holes)
	for i, inner := range holes {
		if len(inner) == 0 {
			continue
		}
		for _, j := range idx.candidates(i) {
			outer := holes[j]
			pt, ok := findPtNotNode(inner, ringEdge(gg, polygon, j+1))
			if !ok {
				continue
			}
			if algorithm.IsInRing(pt, outer) {
				c.report(NestedHoles, pt, inner)
				if c.done() {
					return
				}
				break
			}
		}
	}
}

// A shell may only lie inside another polygon if it is inside one of that
// polygon's holes.
func (c *checker) checkShellsNotNested(gg *graph.GeometryGraph, polygons []orb.Polygon) {
	shells := make([]orb.Ring, len(polygons))
	for i, p := range polygons {
		if len(p) > 0 {
			shells[i] = p[0]
		}
	}
	idx := newRingIndex(shells)
	for i, shell := range shells {
		if len(shell) == 0 {
			continue
		}
		for _, j := range idx.candidates(i) {
			if at, nested := c.shellNestedIn(gg, i, j, polygons); nested {
				c.report(NestedShells, at, shell)
				if c.done() {
					return
				}
				break
			}
		}
	}
}

func (c *checker) shellNestedIn(gg *graph.GeometryGraph, i, j int, polygons []orb.Polygon) (orb.Point, bool) {
	shell := polygons[i][0]
	other := polygons[j]

	shellPt, ok := findPtNotNode(shell, ringEdge(gg, j, 0))
	// Entirely on the other shell's nodes means it's outside it
	if !ok {
		return orb.Point{}, false
	}
	if !algorithm.IsInRing(shellPt, other[0]) {
		return orb.Point{}, false
	}
	if len(other) <= 1 {
		return shellPt, true
	}

	var badPt orb.Point
	for h := 1; h < len(other); h++ {
		pt, inside := c.shellInsideHole(gg, i, j, h, polygons)
		if inside {
			return orb.Point{}, false
		}
		badPt = pt
	}
	return badPt, true
}

// shellInsideHole decides whether shell i sits properly inside hole h of
// polygon j. If not, the point proving it is returned.
func (c *checker) shellInsideHole(gg *graph.GeometryGraph, i, j, h int, polygons []orb.Polygon) (orb.Point, bool) {
	shell := polygons[i][0]
	hole := polygons[j][h]
	if len(hole) == 0 {
		return shell[0], false
	}

	if shellPt, ok := findPtNotNode(shell, ringEdge(gg, j, h)); ok {
		if !algorithm.IsInRing(shellPt, hole) {
			return shellPt, false
		}
	}
	if holePt, ok := findPtNotNode(hole, ringEdge(gg, i, 0)); ok {
		if algorithm.IsInRing(holePt, shell) {
			return holePt, false
		}
		return orb.Point{}, true
	}
	internal.FatalAtf(shell[0], "points in shell and hole appear to be equal")
	return orb.Point{}, false
}
