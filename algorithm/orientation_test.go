package algorithm

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestOrientation(t *testing.T) {
	assert.Equal(t, Counterclockwise, Orientation(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 1}))
	assert.Equal(t, Clockwise, Orientation(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, -1}))
	assert.Equal(t, Collinear, Orientation(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{20, 0}))

	// Nearly collinear input falls through to exact arithmetic
	p1 := orb.Point{0.1, 0.1}
	p2 := orb.Point{0.3, 0.3}
	assert.Equal(t, Collinear, Orientation(p1, p2, orb.Point{0.2, 0.2}))
}

func TestSignedArea(t *testing.T) {
	ccw := []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	assert.Equal(t, 16.0, SignedArea(ccw))
	assert.True(t, IsCCW(ccw))

	open := ccw[:4]
	assert.Equal(t, 16.0, SignedArea(open))

	cw := []orb.Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}}
	assert.Equal(t, -16.0, SignedArea(cw))
	assert.False(t, IsCCW(cw))
}

func TestQuadrant(t *testing.T) {
	assert.Equal(t, NE, Quadrant(1, 1))
	assert.Equal(t, NE, Quadrant(1, 0))
	assert.Equal(t, NE, Quadrant(0, 1))
	assert.Equal(t, NW, Quadrant(-1, 0))
	assert.Equal(t, SE, Quadrant(0, -1))
	assert.Equal(t, NW, Quadrant(-1, 1))
	assert.Equal(t, SW, Quadrant(-1, -1))
	assert.Equal(t, SE, Quadrant(1, -1))
}

func TestCompareDirection(t *testing.T) {
	o := orb.Point{0, 0}
	assert.Equal(t, -1, CompareDirection(o, orb.Point{1, 0}, orb.Point{0, 1}))
	assert.Equal(t, 1, CompareDirection(o, orb.Point{-1, -1}, orb.Point{1, 1}))
	// Same quadrant, b is left of a
	assert.Equal(t, -1, CompareDirection(o, orb.Point{2, 1}, orb.Point{1, 2}))
	assert.Equal(t, 0, CompareDirection(o, orb.Point{1, 1}, orb.Point{3, 3}))
}

func TestCircularIndex(t *testing.T) {
	n := 3
	expectedIndexes := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	for i := -3; i < 6; i++ {
		assert.Equal(t, expectedIndexes[i+3], CircularIndex(i, n))
	}
}

func TestLocateInRing(t *testing.T) {
	ring := []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	assert.Equal(t, Interior, LocateInRing(orb.Point{5, 5}, ring))
	assert.Equal(t, Exterior, LocateInRing(orb.Point{15, 5}, ring))
	assert.Equal(t, Exterior, LocateInRing(orb.Point{-5, 5}, ring))
	assert.Equal(t, Boundary, LocateInRing(orb.Point{10, 5}, ring))
	assert.Equal(t, Boundary, LocateInRing(orb.Point{5, 0}, ring))
	assert.Equal(t, Boundary, LocateInRing(orb.Point{0, 0}, ring))
	// Ray passes through a vertex
	diamond := []orb.Point{{0, 5}, {5, 0}, {10, 5}, {5, 10}, {0, 5}}
	assert.Equal(t, Interior, LocateInRing(orb.Point{2, 5}, diamond))
	assert.Equal(t, Exterior, LocateInRing(orb.Point{-2, 5}, diamond))
}

func TestInteriorAngle(t *testing.T) {
	assert.InDelta(t, 180, InteriorAngle(orb.Point{-1, 0}, orb.Point{0, 0}, orb.Point{1, 0}), 1e-9)
	assert.InDelta(t, 90, InteriorAngle(orb.Point{-1, 0}, orb.Point{0, 0}, orb.Point{0, 1}), 1e-9)
	assert.InDelta(t, 45, InteriorAngle(orb.Point{1, 1}, orb.Point{0, 0}, orb.Point{1, 0}), 1e-9)
}

func TestRemoveRepeatedPoints(t *testing.T) {
	pts := []orb.Point{{0, 0}, {0, 0}, {1, 1}, {1, 1}, {1, 1}, {2, 0}}
	assert.Equal(t, []orb.Point{{0, 0}, {1, 1}, {2, 0}}, RemoveRepeatedPoints(pts))
	assert.Len(t, pts, 6)
}

func TestFactory(t *testing.T) {
	f := NewFactory(Fixed(10))
	ring := f.Ring([]orb.Point{{0.01, 0}, {1, 0}, {1, 1}})
	assert.Equal(t, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, ring)

	src := []orb.Point{{0, 0}, {1, 1}}
	ls := f.LineString(src)
	ls[0] = orb.Point{9, 9}
	assert.Equal(t, orb.Point{0, 0}, src[0])
}
