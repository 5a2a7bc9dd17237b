package algorithm

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperCrossing(t *testing.T) {
	li := NewRobustLineIntersector(Floating)
	li.Fallback = func(p1, p2, q1, q2 orb.Point) orb.Point {
		t.Fatal("fallback should not run for well conditioned input")
		return orb.Point{}
	}
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 10}, orb.Point{0, 10}, orb.Point{10, 0})
	require.Equal(t, PointIntersection, li.Result())
	assert.True(t, li.IsProper())
	assert.Equal(t, 1, li.IntersectionNum())
	assert.InDelta(t, 5, li.Intersection(0)[0], 1e-12)
	assert.InDelta(t, 5, li.Intersection(0)[1], 1e-12)
}

func TestEndpointIntersections(t *testing.T) {
	li := NewRobustLineIntersector(Floating)

	t.Run("shared endpoint", func(t *testing.T) {
		li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{10, 0}, orb.Point{10, 10})
		require.Equal(t, PointIntersection, li.Result())
		assert.False(t, li.IsProper())
		assert.Equal(t, orb.Point{10, 0}, li.Intersection(0))
	})

	t.Run("endpoint on interior", func(t *testing.T) {
		li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 0}, orb.Point{5, 5})
		require.Equal(t, PointIntersection, li.Result())
		assert.False(t, li.IsProper())
		assert.Equal(t, orb.Point{5, 0}, li.Intersection(0))
	})

	t.Run("disjoint", func(t *testing.T) {
		li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 1}, orb.Point{10, 1})
		assert.Equal(t, NoIntersection, li.Result())
		assert.False(t, li.HasIntersection())
	})
}

func TestCollinearIntersections(t *testing.T) {
	li := NewRobustLineIntersector(Floating)

	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 0}, orb.Point{15, 0})
	require.Equal(t, CollinearIntersection, li.Result())
	assert.True(t, li.IsCollinear())
	assert.Equal(t, 2, li.IntersectionNum())
	assert.True(t, li.IsIntersection(orb.Point{5, 0}))
	assert.True(t, li.IsIntersection(orb.Point{10, 0}))

	// Collinear segments which only share an endpoint meet at a point
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{10, 0}, orb.Point{20, 0})
	require.Equal(t, PointIntersection, li.Result())
	assert.Equal(t, orb.Point{10, 0}, li.Intersection(0))

	// Containment
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{2, 0}, orb.Point{4, 0})
	require.Equal(t, CollinearIntersection, li.Result())
	assert.Equal(t, orb.Point{2, 0}, li.Intersection(0))
	assert.Equal(t, orb.Point{4, 0}, li.Intersection(1))
}

func TestPointIntersectionIsContainmentOnly(t *testing.T) {
	li := NewRobustLineIntersector(Floating)
	li.ComputePointIntersection(orb.Point{5, 5}, orb.Point{0, 0}, orb.Point{10, 10})
	assert.True(t, li.HasIntersection())
	assert.True(t, li.IsProper())

	li.ComputePointIntersection(orb.Point{0, 0}, orb.Point{0, 0}, orb.Point{10, 10})
	assert.True(t, li.HasIntersection())
	assert.False(t, li.IsProper())

	li.ComputePointIntersection(orb.Point{5, 6}, orb.Point{0, 0}, orb.Point{10, 10})
	assert.False(t, li.HasIntersection())
}

func TestEdgeDistanceUsesLongerAxis(t *testing.T) {
	p0 := orb.Point{0, 0}
	p1 := orb.Point{10, 1}
	assert.Equal(t, 0.0, EdgeDistance(p0, p0, p1))
	assert.Equal(t, 5.0, EdgeDistance(orb.Point{5, 0.5}, p0, p1))
	assert.Equal(t, 10.0, EdgeDistance(p1, p0, p1))

	// Vertical segment uses y
	assert.Equal(t, 3.0, EdgeDistance(orb.Point{0, 3}, orb.Point{0, 0}, orb.Point{0, 10}))

	// Monotone along the segment
	prev := -1.0
	for i := 0; i <= 10; i++ {
		d := EdgeDistance(orb.Point{float64(i), float64(i) / 10}, p0, p1)
		assert.Greater(t, d, prev)
		prev = d
	}
}

func TestFallbackOnlyForNonFiniteIntersection(t *testing.T) {
	var calls [][4]orb.Point
	li := NewRobustLineIntersector(Floating)
	li.Fallback = func(p1, p2, q1, q2 orb.Point) orb.Point {
		calls = append(calls, [4]orb.Point{p1, p2, q1, q2})
		return orb.Point{0, 0}
	}

	// The orientations are still exact, but the determinants overflow
	p1, p2 := orb.Point{-1e300, -1e300}, orb.Point{1e300, 1e300}
	q1, q2 := orb.Point{-1e300, 1e300}, orb.Point{1e300, -1e300}
	li.ComputeIntersection(p1, p2, q1, q2)
	require.Equal(t, PointIntersection, li.Result())
	assert.True(t, li.IsProper())
	require.Len(t, calls, 1)
	assert.Equal(t, [4]orb.Point{p1, p2, q1, q2}, calls[0])
	assert.Equal(t, orb.Point{0, 0}, li.Intersection(0))

	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{10, 10}, orb.Point{0, 10}, orb.Point{10, 0})
	require.True(t, li.IsProper())
	assert.Len(t, calls, 1)
	assert.InDelta(t, 5, li.Intersection(0)[0], 1e-12)
}

func TestCentralEndpoint(t *testing.T) {
	p := CentralEndpoint(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{4, 1}, orb.Point{6, -1})
	// Centroid is (5, 0); (4, 1) and (6, -1) tie, the first wins
	assert.Equal(t, orb.Point{4, 1}, p)
}

func TestPrecisionModelSnapsIntersections(t *testing.T) {
	li := NewRobustLineIntersector(Fixed(1))
	li.ComputeIntersection(orb.Point{0, 0}, orb.Point{1, 1}, orb.Point{0, 1}, orb.Point{1, 0})
	require.True(t, li.IsProper())
	assert.Equal(t, orb.Point{1, 1}, li.Intersection(0))

	assert.Equal(t, orb.Point{0.25, 3}, Fixed(4).MakePrecise(orb.Point{0.26, 3.01}))
	assert.Equal(t, orb.Point{0.26, 3.01}, Floating.MakePrecise(orb.Point{0.26, 3.01}))
}
