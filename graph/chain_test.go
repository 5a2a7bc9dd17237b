package graph

import (
	"math/rand"
	"testing"

	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainStartIndices(t *testing.T) {
	t.Run("quadrant changes", func(t *testing.T) {
		pts := []orb.Point{{0, 0}, {1, 1}, {2, 3}, {3, 2}, {4, 0}, {3, -1}}
		assert.Equal(t, []int{0, 2, 4, 5}, ChainStartIndices(pts))
	})

	t.Run("repeated points continue the chain", func(t *testing.T) {
		pts := []orb.Point{{0, 0}, {1, 1}, {1, 1}, {2, 2}, {1, 3}}
		assert.Equal(t, []int{0, 3, 4}, ChainStartIndices(pts))
	})

	t.Run("leading repeated points", func(t *testing.T) {
		pts := []orb.Point{{0, 0}, {0, 0}, {1, 1}, {0, 2}}
		assert.Equal(t, []int{0, 2, 3}, ChainStartIndices(pts))
	})

	t.Run("degenerate", func(t *testing.T) {
		assert.Nil(t, ChainStartIndices(nil))
		assert.Equal(t, []int{0, 0}, ChainStartIndices([]orb.Point{{1, 1}}))
		assert.Equal(t, []int{0, 1}, ChainStartIndices([]orb.Point{{1, 1}, {1, 1}}))
	})
}

func TestChainsAreMonotone(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		pts := make([]orb.Point, 2+rnd.Intn(40))
		for i := range pts {
			pts[i] = orb.Point{float64(rnd.Intn(20)), float64(rnd.Intn(20))}
		}
		e := NewEdge(pts, Label{})
		starts := e.ChainStarts()
		require.Equal(t, 0, starts[0])
		require.Equal(t, len(pts)-1, starts[len(starts)-1])

		for _, mc := range e.Chains() {
			quad := -1
			bound := orb.Bound{Min: pts[mc.Start], Max: pts[mc.Start]}
			for i := mc.Start; i < mc.End; i++ {
				bound = bound.Extend(pts[i+1])
				if pts[i] == pts[i+1] {
					continue
				}
				q := algorithm.QuadrantOf(pts[i], pts[i+1])
				if quad == -1 {
					quad = q
				}
				assert.Equal(t, quad, q, "chain %d-%d of %v", mc.Start, mc.End, pts)
			}
			assert.Equal(t, bound, mc.Bound())
		}
	}
}
