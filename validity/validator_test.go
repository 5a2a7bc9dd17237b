package validity

import (
	"math"
	"testing"

	"github.com/osuushi/planar/algorithm"
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

func kinds(errs []*Error) []Kind {
	var result []Kind
	for _, err := range errs {
		result = append(result, err.Kind)
	}
	return result
}

func TestSquareWithHoleIsValid(t *testing.T) {
	g := LoadFixture("square_with_hole")
	assert.True(t, IsValid(g))
	assert.Empty(t, Errors(g))
}

func TestHoleOutsideShell(t *testing.T) {
	err := FirstError(LoadFixture("hole_outside_shell"))
	require.NotNil(t, err)
	assert.Equal(t, HoleOutsideShell, err.Kind)
	assert.Equal(t, orb.Point{20, 2}, err.Location)
	assert.Equal(t, orb.Ring{{20, 2}, {20, 6}, {24, 6}, {24, 2}, {20, 2}}, err.Geometry)
}

func TestHoleWithEmptyShell(t *testing.T) {
	hole := orb.Ring{{2, 2}, {2, 4}, {4, 4}, {4, 2}, {2, 2}}
	g := orb.Polygon{{}, hole}

	errs := Errors(g)
	require.Len(t, errs, 1)
	assert.Equal(t, HoleOutsideShell, errs[0].Kind)
	assert.Equal(t, orb.Point{2, 2}, errs[0].Location)
	assert.Equal(t, hole, errs[0].Geometry)
	assert.False(t, IsValid(g))
}

func TestPrecisionCollapsedVertexIsDropped(t *testing.T) {
	// (10 0.2) rounds onto (10 0), leaving a plain rectangle
	g := mustWKT(t, "POLYGON((0 0,10 0,10 0.2,10 10,0 10,0 0))")
	assert.Empty(t, Errors(g))
	assert.Empty(t, New(Options{Precision: algorithm.Fixed(1)}).Errors(g))

	ring := orb.Ring{{0, 0}, {10, 0}, {10, 0.2}, {10, 10}, {0, 10}, {0, 0}}
	assert.True(t, New(Options{Precision: algorithm.Fixed(1)}).IsValid(ring))
}

func TestNestedHoles(t *testing.T) {
	err := FirstError(LoadFixture("nested_holes"))
	require.NotNil(t, err)
	assert.Equal(t, NestedHoles, err.Kind)
	assert.Equal(t, orb.Point{6, 6}, err.Location)
}

func TestDisconnectedInterior(t *testing.T) {
	g := LoadFixture("disconnected_interior")
	err := FirstError(g)
	require.NotNil(t, err)
	assert.Equal(t, DisconnectedInterior, err.Kind)
	assert.Equal(t, []Kind{DisconnectedInterior}, kinds(Errors(g)))
}

func TestShellInsideHoleIsValid(t *testing.T) {
	assert.True(t, IsValid(LoadFixture("shell_in_hole")))
}

func TestNestedShells(t *testing.T) {
	err := FirstError(LoadFixture("nested_shells"))
	require.NotNil(t, err)
	assert.Equal(t, NestedShells, err.Kind)
	assert.Equal(t, orb.Point{2, 2}, err.Location)
}

func TestSelfIntersection(t *testing.T) {
	bowtie := mustWKT(t, "POLYGON((0 0,10 10,10 0,0 10,0 0))")
	err := FirstError(bowtie)
	require.NotNil(t, err)
	assert.Equal(t, SelfIntersection, err.Kind)
	assert.Equal(t, orb.Point{5, 5}, err.Location)
}

func TestRingSelfIntersection(t *testing.T) {
	ring := orb.Ring{{0, 0}, {10, 10}, {10, 0}, {0, 10}, {0, 0}}
	err := FirstError(ring)
	require.NotNil(t, err)
	assert.Equal(t, RingSelfIntersection, err.Kind)
	assert.Equal(t, orb.Point{5, 5}, err.Location)

	assert.True(t, IsValid(orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}}))
}

func TestDuplicateRings(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	err := FirstError(orb.MultiPolygon{square, square})
	require.NotNil(t, err)
	assert.Equal(t, DuplicateRings, err.Kind)
	assert.Equal(t, orb.Point{0, 0}, err.Location)
}

func TestRingNotClosed(t *testing.T) {
	open := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	err := FirstError(open)
	require.NotNil(t, err)
	assert.Equal(t, RingNotClosed, err.Kind)
	assert.Equal(t, orb.Point{0, 0}, err.Location)
}

func TestTooFewPoints(t *testing.T) {
	err := FirstError(orb.LineString{{1, 1}, {1, 1}})
	require.NotNil(t, err)
	assert.Equal(t, TooFewPoints, err.Kind)
	assert.Equal(t, orb.Point{1, 1}, err.Location)

	sliver := orb.Polygon{{{0, 0}, {10, 0}, {10, 0}, {0, 0}}}
	err = FirstError(sliver)
	require.NotNil(t, err)
	assert.Equal(t, TooFewPoints, err.Kind)

	assert.True(t, IsValid(orb.LineString{{0, 0}, {1, 1}}))
}

func TestInvalidCoordinate(t *testing.T) {
	bad := orb.Polygon{{{0, 0}, {10, 0}, {math.NaN(), 10}, {0, 10}, {0, 0}}}
	err := FirstError(bad)
	require.NotNil(t, err)
	assert.Equal(t, InvalidCoordinate, err.Kind)

	assert.False(t, IsValid(orb.Point{math.Inf(1), 0}))
	assert.True(t, IsValid(orb.Point{1, 2}))
}

func TestInvalidCoordinateStopsLaterChecks(t *testing.T) {
	// The open hole is never looked at
	g := orb.Polygon{
		{{0, 0}, {10, 0}, {math.NaN(), 10}, {0, 10}, {0, 0}},
		{{2, 2}, {2, 8}, {8, 8}},
	}
	assert.Equal(t, []Kind{InvalidCoordinate}, kinds(Errors(g)))
}

func TestShortCircuitAndFullList(t *testing.T) {
	g := orb.MultiPolygon{
		{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{20, 2}, {20, 6}, {24, 6}, {24, 2}, {20, 2}},
		},
		{
			{{100, 0}, {110, 0}, {110, 10}, {100, 10}, {100, 0}},
			{{120, 2}, {120, 6}, {124, 6}, {124, 2}, {120, 2}},
		},
	}

	all := Errors(g)
	require.Len(t, all, 2)
	assert.Equal(t, []Kind{HoleOutsideShell, HoleOutsideShell}, kinds(all))
	assert.Equal(t, orb.Point{20, 2}, all[0].Location)
	assert.Equal(t, orb.Point{120, 2}, all[1].Location)

	short := New(Options{ShortCircuit: true}).Errors(g)
	require.Len(t, short, 1)
	assert.Equal(t, all[0].Location, short[0].Location)
}

func TestSelfTouchingRingFormingHole(t *testing.T) {
	inverted := mustWKT(t, "POLYGON((0 0,0 10,10 10,10 0,5 0,7 5,3 5,5 0,0 0))")

	err := FirstError(inverted)
	require.NotNil(t, err)
	assert.Equal(t, RingSelfIntersection, err.Kind)
	assert.Equal(t, orb.Point{5, 0}, err.Location)

	v := New(Options{SelfTouchingRingFormingHoleValid: true})
	assert.True(t, v.IsValid(inverted))
	assert.Empty(t, v.Errors(inverted))
}

func TestCollection(t *testing.T) {
	g := orb.Collection{
		LoadFixture("square_with_hole"),
		orb.LineString{{3, 3}},
		LoadFixture("hole_outside_shell"),
	}
	assert.Equal(t, []Kind{TooFewPoints, HoleOutsideShell}, kinds(Errors(g)))
	assert.Equal(t, TooFewPoints, FirstError(g).Kind)
}

func TestBoundIsValid(t *testing.T) {
	assert.True(t, IsValid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}))
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: NestedHoles, Location: orb.Point{1.5, 2}}
	assert.Equal(t, "holes are nested at (1.5 2)", err.Error())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
