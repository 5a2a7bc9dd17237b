package graph

import (
	"testing"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var floatingFactory = algorithm.NewFactory(algorithm.Floating)

func TestNodedCrossingLines(t *testing.T) {
	g := NewGeometryGraph(0, orb.MultiLineString{
		{{0, 0}, {10, 10}},
		{{0, 10}, {10, 0}},
	}, floatingFactory)
	si := g.ComputeSelfNodes(newLI(), false, false)
	assert.True(t, si.HasProperIntersection())

	pg := g.Noded()
	assert.Len(t, pg.Edges, 4)
	assert.Len(t, pg.Nodes, 5)

	center, ok := pg.FindNode(orb.Point{5, 5})
	require.True(t, ok)
	node := pg.Node(center)
	require.Equal(t, 4, node.Degree())

	// Counterclockwise from the positive x axis
	var directions []orb.Point
	for _, d := range node.Star {
		directions = append(directions, pg.DirEdge(d).P1)
	}
	assert.Equal(t, []orb.Point{{10, 10}, {0, 10}, {0, 0}, {10, 0}}, directions)

	for _, d := range node.Star {
		de := pg.DirEdge(d)
		assert.Equal(t, center, de.Origin)
		assert.Equal(t, de.Edge, pg.DirEdge(Sym(d)).Edge)
		assert.NotEqual(t, de.Forward, pg.DirEdge(Sym(d)).Forward)
	}

	e, ok := pg.FindEdge(orb.Point{5, 5}, orb.Point{10, 10})
	require.True(t, ok)
	assert.Equal(t, []orb.Point{{5, 5}, {10, 10}}, pg.Edges[e].Points)

	// Halfway along the edge still counts as the same direction
	e, ok = pg.FindEdgeInSameDirection(orb.Point{10, 10}, orb.Point{7, 7})
	require.True(t, ok)
	assert.Equal(t, []orb.Point{{5, 5}, {10, 10}}, pg.Edges[e].Points)
	assert.Equal(t, DirEdgeID(2*e), pg.FindEdgeEnd(e))

	_, ok = pg.FindEdgeInSameDirection(orb.Point{10, 10}, orb.Point{7, 8})
	assert.False(t, ok)

	img := pg.Draw(200)
	assert.Equal(t, 200, img.Bounds().Dx())
}

// markInteriorOnRight puts every directed edge with the area's interior on its
// right into the result.
func markInteriorOnRight(pg *PlanarGraph) {
	for i := range pg.DirEdges {
		de := &pg.DirEdges[i]
		de.InResult = de.Label.Location(0, Right) == algorithm.Interior
	}
}

func TestRingsOfPolygonWithHole(t *testing.T) {
	polygon := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {2, 8}, {8, 8}, {8, 2}, {2, 2}},
	}
	g := NewGeometryGraph(0, polygon, floatingFactory)
	g.ComputeSelfNodes(newLI(), true, false)

	shellEdge, ok := g.RingEdge(RingRef{0, 0})
	require.True(t, ok)
	// Counterclockwise shell, so the interior is on the left
	assert.Equal(t, algorithm.Interior, shellEdge.Label.Location(0, Left))
	assert.Equal(t, algorithm.Exterior, shellEdge.Label.Location(0, Right))
	holeEdge, ok := g.RingEdge(RingRef{0, 1})
	require.True(t, ok)
	assert.Equal(t, algorithm.Exterior, holeEdge.Label.Location(0, Right))

	pg := g.Noded()
	markInteriorOnRight(pg)
	pg.LinkResultDirectedEdges()
	rings := pg.BuildEdgeRings()
	require.Len(t, rings, 2)

	var holes, shells int
	for _, r := range rings {
		assert.True(t, r.Minimal)
		assert.Len(t, r.Points, 5)
		assert.True(t, algorithm.IsClosed(r.Points))
		if r.Hole {
			holes++
		} else {
			shells++
		}
	}
	assert.Equal(t, 1, holes)
	assert.Equal(t, 1, shells)
}

func TestRingsAtSelfTouchingNode(t *testing.T) {
	// Two squares touching at a corner, drawn as a single ring. Linking around
	// the shared node keeps the squares apart.
	g := NewGeometryGraph(0, orb.Polygon{
		{{0, 0}, {5, 0}, {5, 5}, {10, 5}, {10, 10}, {5, 10}, {5, 5}, {0, 5}, {0, 0}},
	}, floatingFactory)
	g.ComputeSelfNodes(newLI(), true, false)
	pg := g.Noded()
	require.Len(t, pg.Edges, 3)

	touch, ok := pg.FindNode(orb.Point{5, 5})
	require.True(t, ok)
	assert.Equal(t, 4, pg.Node(touch).Degree())

	markInteriorOnRight(pg)
	pg.LinkResultDirectedEdges()
	rings := pg.BuildEdgeRings()

	require.Len(t, rings, 2)
	edgeCount := 0
	for _, r := range rings {
		assert.False(t, r.Hole)
		edgeCount += len(r.Edges)
	}
	assert.Equal(t, 3, edgeCount)
	// A maximal and a minimal ring for each square
	assert.Len(t, pg.Rings, 4)
}

func TestBrokenRingIsFatal(t *testing.T) {
	pg := NewPlanarGraph()
	pg.AddEdges([]*Edge{NewEdge(
		[]orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
		AreaLabel(0, algorithm.Boundary, algorithm.Exterior, algorithm.Interior),
	)})
	pg.DirEdge(0).InResult = true

	err := func() (err error) {
		defer func() {
			err = internal.HandleTopologyPanicRecover(recover())
		}()
		// Deliberately not linked
		pg.BuildEdgeRings()
		return nil
	}()
	require.Error(t, err)
	assert.Equal(t, orb.Point{0, 0}, err.(*internal.TopologyError).Location)
}

func TestAddEdgesRejectsDegenerateEdge(t *testing.T) {
	pg := NewPlanarGraph()
	err := func() (err error) {
		defer func() {
			err = internal.HandleTopologyPanicRecover(recover())
		}()
		pg.AddEdges([]*Edge{NewEdge([]orb.Point{{0, 0}}, Label{})})
		return nil
	}()
	assert.Error(t, err)
}

func TestTooFewPoints(t *testing.T) {
	g := NewGeometryGraph(0, orb.Polygon{
		{{0, 0}, {10, 0}, {0, 0}, {0, 0}},
	}, floatingFactory)
	assert.True(t, g.TooFewPoints)
	assert.Equal(t, orb.Point{0, 0}, g.InvalidPoint)
	assert.Empty(t, g.Edges)

	g = NewGeometryGraph(0, orb.LineString{{3, 3}, {3, 3}}, floatingFactory)
	assert.True(t, g.TooFewPoints)
	assert.Equal(t, orb.Point{3, 3}, g.InvalidPoint)
}

func TestLabelFlip(t *testing.T) {
	l := AreaLabel(0, algorithm.Boundary, algorithm.Exterior, algorithm.Interior)
	flipped := l.Flipped()
	assert.Equal(t, algorithm.Interior, flipped.Location(0, Left))
	assert.Equal(t, algorithm.Exterior, flipped.Location(0, Right))
	assert.Equal(t, algorithm.Boundary, flipped.Location(0, On))
	// The original is untouched
	assert.Equal(t, algorithm.Exterior, l.Location(0, Left))

	line := LineLabel(1, algorithm.Interior)
	assert.False(t, line.IsArea(1))
	assert.Equal(t, algorithm.None, line.Location(1, Left))
	assert.True(t, line.IsNull(0))

	line.Merge(l)
	assert.True(t, line.IsArea(0))
	assert.Equal(t, algorithm.Interior, line.Location(0, Right))
	assert.Equal(t, "A:ebi B:i", line.String())
}
