package graph

import (
	"fmt"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal"
	"github.com/osuushi/planar/internal/dbg"
	"github.com/paulmach/orb"
)

// An EdgeRing is a closed cycle of directed edges. Maximal rings follow Next,
// and may pass through a node more than once. Minimal rings follow NextMin and
// never do.
type EdgeRing struct {
	ID      int
	Edges   []DirEdgeID
	Points  []orb.Point
	Label   Label
	Minimal bool
	// A ring is a hole if it runs counterclockwise, meaning the interior of the
	// area is outside it.
	Hole bool
}

func (r *EdgeRing) String() string {
	kind := "shell"
	if r.Hole {
		kind = "hole"
	}
	return fmt.Sprintf("%s %s of %d edges", kind, dbg.RingName(r), len(r.Edges))
}

// BuildEdgeRings traces a maximal ring from every result directed edge not yet
// in one, then breaks each maximal ring into minimal rings. The minimal rings
// are returned. LinkResultDirectedEdges must have been called.
func (g *PlanarGraph) BuildEdgeRings() []*EdgeRing {
	var minimal []*EdgeRing
	for i := range g.DirEdges {
		d := DirEdgeID(i)
		de := g.DirEdge(d)
		if !de.InResult || de.edgeRing != noRing {
			continue
		}
		maxRing := g.traceRing(d, false)
		g.linkMinimalRing(maxRing)
		minimal = append(minimal, g.buildMinimalRings(maxRing)...)
	}
	return minimal
}

func (g *PlanarGraph) linkMinimalRing(maxRing *EdgeRing) {
	for _, d := range maxRing.Edges {
		g.linkMinimalDirectedEdges(g.DirEdge(d).Origin, maxRing.ID)
	}
}

func (g *PlanarGraph) buildMinimalRings(maxRing *EdgeRing) []*EdgeRing {
	var rings []*EdgeRing
	for _, d := range maxRing.Edges {
		if g.DirEdge(d).minEdgeRing == noRing {
			rings = append(rings, g.traceRing(d, true))
		}
	}
	return rings
}

// traceRing follows links from start until it comes back around. Running off
// the end of the links, or meeting a directed edge twice, means the graph is
// broken.
func (g *PlanarGraph) traceRing(start DirEdgeID, minimal bool) *EdgeRing {
	ring := &EdgeRing{ID: len(g.Rings), Minimal: minimal}
	g.Rings = append(g.Rings, ring)

	d := start
	first := true
	for {
		if d == NoDirEdge {
			internal.FatalAtf(g.DirEdge(start).P0, "found unlinked directed edge while tracing %s", ring)
		}
		de := g.DirEdge(d)
		slot := &de.edgeRing
		next := de.Next
		if minimal {
			slot = &de.minEdgeRing
			next = de.NextMin
		}
		if *slot == ring.ID {
			internal.FatalAtf(de.P0, "directed edge visited twice during ring building")
		}
		if !de.Label.IsArea(0) {
			internal.FatalAtf(de.P0, "ring contains a non-area edge")
		}

		ring.Edges = append(ring.Edges, d)
		ring.Label.Merge(de.Label)
		ring.addPoints(g.Edges[de.Edge], de.Forward, first)
		first = false
		*slot = ring.ID

		d = next
		if d == start {
			break
		}
	}
	ring.Hole = algorithm.IsCCW(ring.Points)
	return ring
}

func (r *EdgeRing) addPoints(e *Edge, forward, first bool) {
	pts := e.Points
	if forward {
		startIndex := 1
		if first {
			startIndex = 0
		}
		r.Points = append(r.Points, pts[startIndex:]...)
		return
	}
	startIndex := len(pts) - 2
	if first {
		startIndex = len(pts) - 1
	}
	for i := startIndex; i >= 0; i-- {
		r.Points = append(r.Points, pts[i])
	}
}

// Ring materialises the ring's points.
func (r *EdgeRing) Ring(f algorithm.Factory) orb.Ring {
	return f.Ring(r.Points)
}
