package validity

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/graph"
	"github.com/paulmach/orb"
)

func (c *checker) checkCoordinates(g orb.Geometry, pts []orb.Point) {
	for _, p := range pts {
		if !algorithm.IsValidCoordinate(p) {
			c.report(InvalidCoordinate, p, g)
			return
		}
	}
}

func (c *checker) checkClosed(r orb.Ring) {
	if len(r) == 0 {
		return
	}
	if !algorithm.IsClosed(r) {
		c.report(RingNotClosed, r[0], r)
	}
}

func (c *checker) checkTooFewPoints(gg *graph.GeometryGraph, g orb.Geometry) {
	if gg.TooFewPoints {
		c.report(TooFewPoints, gg.InvalidPoint, g)
	}
}

// checkConsistentArea nodes the rings against each other and checks the
// labelling around every node. A proper crossing, or a node where inside and
// outside don't alternate, is a self-intersection. Two rings running along
// each other out of a node are duplicates.
func (c *checker) checkConsistentArea(gg *graph.GeometryGraph, g orb.Geometry) bool {
	si := gg.ComputeSelfNodes(c.li, true, true)
	if si.HasProperIntersection() {
		c.report(SelfIntersection, si.ProperIntersectionPoint(), g)
		return false
	}

	stars := graph.BuildEdgeEndStars(gg.Edges)
	for _, star := range stars {
		if !star.IsAreaLabelsConsistent(0) {
			c.report(SelfIntersection, star.Coord, g)
			return false
		}
	}
	for _, star := range stars {
		if bundle, ok := star.DuplicateBundle(); ok {
			c.report(DuplicateRings, bundle.Ends[0].Edge.Points[0], g)
			return false
		}
	}
	return true
}

// A ring passing through the same point twice shows up as a repeated
// coordinate in its intersection list. The list's first entry is the start
// point, which legitimately comes back as the last entry, so it is skipped.
func (c *checker) checkNoSelfIntersectingRings(gg *graph.GeometryGraph) {
	for _, e := range gg.Edges {
		e.Intersections.AddEndpoints()
		seen := make(map[orb.Point]bool)
		for i, ei := range e.Intersections.Items() {
			if i == 0 {
				continue
			}
			if seen[ei.Coord] {
				c.report(RingSelfIntersection, ei.Coord, orb.LineString(e.Points))
				break
			}
			seen[ei.Coord] = true
		}
		if c.done() {
			return
		}
	}
}

// findPtNotNode finds a point of test that is not a node of search. There is
// none when test lies entirely on search's nodes.
func findPtNotNode(test orb.Ring, search *graph.Edge) (orb.Point, bool) {
	for _, p := range test {
		if search == nil || !search.Intersections.IsIntersection(p) {
			return p, true
		}
	}
	return orb.Point{}, false
}

func ringEdge(gg *graph.GeometryGraph, polygon, ring int) *graph.Edge {
	e, _ := gg.RingEdge(graph.RingRef{Polygon: polygon, Ring: ring})
	return e
}

func (c *checker) checkHolesInShell(gg *graph.GeometryGraph, polygon int, p orb.Polygon) {
	if len(p) < 2 {
		return
	}
	shell := orb.Ring(c.factory.LineString(p[0]))
	shellEdge := ringEdge(gg, polygon, 0)
	for _, raw := range p[1:] {
		if len(raw) == 0 {
			continue
		}
		hole := orb.Ring(c.factory.LineString(raw))
		// Nothing is inside an empty shell
		if len(shell) == 0 {
			c.report(HoleOutsideShell, hole[0], raw)
			if c.done() {
				return
			}
			continue
		}
		// A hole lying entirely on the shell's nodes has been dealt with by
		// the consistent area check.
		holePt, ok := findPtNotNode(hole, shellEdge)
		if !ok {
			continue
		}
		if algorithm.LocateInRing(holePt, shell) == algorithm.Exterior {
			c.report(HoleOutsideShell, holePt, raw)
			if c.done() {
				return
			}
		}
	}
}
