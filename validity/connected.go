package validity

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/graph"
	"github.com/osuushi/planar/internal"
	"github.com/paulmach/orb"
)

// checkConnectedInterior finds an interior cut in two by holes touching each
// other or the shell. The noded rings are linked with the interior on their
// right, then everything reachable from each shell is marked. A shell-side
// ring that wasn't reached encloses a separate piece of interior.
func (c *checker) checkConnectedInterior(gg *graph.GeometryGraph, polygons []orb.Polygon) {
	pg := graph.NewPlanarGraph()
	pg.AddEdges(gg.SplitEdges())
	for i := range pg.DirEdges {
		de := &pg.DirEdges[i]
		if de.Label.Location(0, graph.Right) == algorithm.Interior {
			de.InResult = true
		}
	}
	pg.LinkResultDirectedEdges()
	rings := pg.BuildEdgeRings()

	for _, p := range polygons {
		if len(p) > 0 {
			visitShellInterior(pg, c.factory, p[0])
		}
	}

	for _, r := range rings {
		if r.Hole {
			continue
		}
		if pg.DirEdge(r.Edges[0]).Label.Location(0, graph.Right) != algorithm.Interior {
			continue
		}
		for _, d := range r.Edges {
			de := pg.DirEdge(d)
			if !de.Visited {
				c.report(DisconnectedInterior, de.P0, gg.Geometry)
				return
			}
		}
	}
}

func visitShellInterior(pg *graph.PlanarGraph, f algorithm.Factory, shell orb.Ring) {
	// The graph holds the shell as rounded by the factory
	pts := algorithm.RemoveRepeatedPoints(f.LineString(shell))
	if len(pts) < 2 {
		return
	}
	e, ok := pg.FindEdgeInSameDirection(pts[0], pts[1])
	if !ok {
		internal.FatalAtf(pts[0], "no edge leaves the shell's start point")
	}

	start := graph.NoDirEdge
	d := pg.FindEdgeEnd(e)
	switch {
	case pg.DirEdge(d).Label.Location(0, graph.Right) == algorithm.Interior:
		start = d
	case pg.DirEdge(graph.Sym(d)).Label.Location(0, graph.Right) == algorithm.Interior:
		start = graph.Sym(d)
	default:
		internal.FatalAtf(pts[0], "unable to find directed edge with interior on the right")
	}

	d = start
	for {
		de := pg.DirEdge(d)
		de.Visited = true
		d = de.Next
		if d == graph.NoDirEdge {
			internal.FatalAtf(de.P0, "found unlinked directed edge while visiting interior")
		}
		if d == start {
			break
		}
	}
}
