package planar

import (
	"testing"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/validity"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWKT(t *testing.T, s string) orb.Geometry {
	g, err := wkt.Unmarshal(s)
	require.NoError(t, err)
	return g
}

const squareWithHole = "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,2 8,8 8,8 2,2 2))"

// Smoke tests. The internals are already tested.
func TestNode(t *testing.T) {
	pg, err := Node(mustWKT(t, "MULTILINESTRING((0 0,10 10),(0 10,10 0))"), algorithm.Floating)
	require.NoError(t, err)
	assert.Len(t, pg.Edges, 4)
	assert.Len(t, pg.Nodes, 5)
	_, ok := pg.FindNode(orb.Point{5, 5})
	assert.True(t, ok)
}

func TestNodeDropsPointsCollapsedByPrecision(t *testing.T) {
	pg, err := Node(mustWKT(t, "LINESTRING(0 0,0.2 0.1,10 0)"), algorithm.Fixed(1))
	require.NoError(t, err)
	require.Len(t, pg.Edges, 1)
	assert.Equal(t, []orb.Point{{0, 0}, {10, 0}}, pg.Edges[0].Points)
	assert.Len(t, pg.Nodes, 2)
	for _, d := range pg.DirEdges {
		assert.NotEqual(t, d.P0, d.P1)
	}
}

func TestNodeTooFewPoints(t *testing.T) {
	_, err := Node(orb.LineString{{1, 1}, {1, 1}}, algorithm.Floating)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	errs, err := Validate(mustWKT(t, squareWithHole), validity.Options{})
	require.NoError(t, err)
	assert.Empty(t, errs)

	valid, err := IsValid(mustWKT(t, squareWithHole), validity.Options{})
	require.NoError(t, err)
	assert.True(t, valid)

	outside := "POLYGON((0 0,10 0,10 10,0 10,0 0),(20 2,20 6,24 6,24 2,20 2))"
	errs, err = Validate(mustWKT(t, outside), validity.Options{})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, validity.HoleOutsideShell, errs[0].Kind)

	valid, err = IsValid(mustWKT(t, outside), validity.Options{})
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRings(t *testing.T) {
	shells, holes, err := Rings(mustWKT(t, squareWithHole), algorithm.Floating)
	require.NoError(t, err)
	require.Len(t, shells, 1)
	require.Len(t, holes, 1)
	assert.False(t, algorithm.IsCCW(shells[0]))
	assert.True(t, algorithm.IsCCW(holes[0]))
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, shells[0].Bound())
	assert.Equal(t, orb.Bound{Min: orb.Point{2, 2}, Max: orb.Point{8, 8}}, holes[0].Bound())

	shells, holes, err = Rings(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, algorithm.Floating)
	require.NoError(t, err)
	assert.Len(t, shells, 1)
	assert.Empty(t, holes)

	_, _, err = Rings(orb.LineString{{0, 0}, {1, 1}}, algorithm.Floating)
	assert.Error(t, err)
}
