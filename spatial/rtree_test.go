package spatial

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBox(rnd *rand.Rand, maxStart, maxWidth float64) orb.Bound {
	x := rnd.Float64() * maxStart
	y := rnd.Float64() * maxStart
	return orb.Bound{
		Min: orb.Point{x, y},
		Max: orb.Point{x + rnd.Float64()*maxWidth, y + rnd.Float64()*maxWidth},
	}
}

func bruteForce(boxes map[int]orb.Bound, query orb.Bound) []int {
	var result []int
	for id, b := range boxes {
		if overlap(b, query) {
			result = append(result, id)
		}
	}
	sort.Ints(result)
	return result
}

func sorted(ids []int) []int {
	sort.Ints(ids)
	return ids
}

// checkInvariants walks the tree and verifies parent links, entry counts and
// that every parent entry covers its child.
func checkInvariants(t *testing.T, rt *RTree) {
	t.Helper()
	if !rt.hasRoot() {
		return
	}
	leafDepth := -1
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		n := rt.node(idx)
		if idx != rt.root {
			assert.GreaterOrEqual(t, n.numEntries, minChildren)
		}
		assert.LessOrEqual(t, n.numEntries, maxChildren)
		if n.isLeaf {
			if leafDepth == -1 {
				leafDepth = depth
			}
			assert.Equal(t, leafDepth, depth, "leaves at different depths")
			return
		}
		for i := 0; i < n.numEntries; i++ {
			child := n.entries[i].data
			assert.Equal(t, idx, rt.node(child).parent)
			assert.Equal(t, calculateBound(rt.node(child)), n.entries[i].box)
			walk(child, depth+1)
		}
	}
	walk(rt.root, 0)
}

func TestRTreeQueryMatchesBruteForce(t *testing.T) {
	for _, pop := range []int{0, 1, 2, 5, 17, 100, 500} {
		rnd := rand.New(rand.NewSource(int64(pop)))
		var rt RTree
		boxes := make(map[int]orb.Bound)
		for i := 0; i < pop; i++ {
			b := randomBox(rnd, 100, 10)
			boxes[i] = b
			rt.Insert(b, i)
		}
		checkInvariants(t, &rt)
		assert.Equal(t, pop, rt.Len())
		for i := 0; i < 20; i++ {
			query := randomBox(rnd, 100, 30)
			assert.Equal(t, bruteForce(boxes, query), sorted(rt.Query(query)))
		}
	}
}

func TestRTreeDelete(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	var rt RTree
	boxes := make(map[int]orb.Bound)
	for i := 0; i < 200; i++ {
		b := randomBox(rnd, 100, 10)
		boxes[i] = b
		rt.Insert(b, i)
	}

	for _, id := range rnd.Perm(200)[:150] {
		require.True(t, rt.Delete(boxes[id], id))
		delete(boxes, id)
		checkInvariants(t, &rt)
	}
	assert.Equal(t, 50, rt.Len())
	assert.False(t, rt.Delete(orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{-5, -5}}, 3))

	everything := orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{200, 200}}
	assert.Equal(t, bruteForce(boxes, everything), sorted(rt.Query(everything)))

	for id, b := range boxes {
		require.True(t, rt.Remove(b, id))
	}
	assert.Equal(t, 0, rt.Len())
	assert.Empty(t, rt.Query(everything))
	_, ok := rt.Extent()
	assert.False(t, ok)
}

func TestRTreeBulkLoad(t *testing.T) {
	for _, pop := range []int{0, 1, 3, 4, 5, 9, 64, 333} {
		rnd := rand.New(rand.NewSource(int64(pop) + 7))
		boxes := make(map[int]orb.Bound)
		items := make([]BulkItem, pop)
		for i := range items {
			b := randomBox(rnd, 100, 10)
			boxes[i] = b
			items[i] = BulkItem{Box: b, RecordID: i}
		}
		rt := BulkLoad(items)
		checkInvariants(t, rt)
		assert.Equal(t, pop, rt.Len())
		for i := 0; i < 20; i++ {
			query := randomBox(rnd, 100, 30)
			assert.Equal(t, bruteForce(boxes, query), sorted(rt.Query(query)))
		}

		// Bulk loaded trees keep accepting edits
		extra := orb.Bound{Min: orb.Point{500, 500}, Max: orb.Point{501, 501}}
		rt.Insert(extra, pop)
		assert.Equal(t, []int{pop}, rt.Query(extra))
		assert.True(t, rt.Delete(extra, pop))
		checkInvariants(t, rt)
	}
}

func TestRTreeRangeSearchStop(t *testing.T) {
	var rt RTree
	for i := 0; i < 10; i++ {
		rt.Insert(orb.Bound{Min: orb.Point{float64(i), 0}, Max: orb.Point{float64(i) + 1, 1}}, i)
	}
	var seen int
	err := rt.RangeSearch(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 1}}, func(int) error {
		seen++
		if seen == 3 {
			return Stop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, seen)

	ext, ok := rt.Extent()
	require.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 1}}, ext)
}
