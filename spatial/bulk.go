package spatial

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

type BulkItem struct {
	Box      orb.Bound
	RecordID int
}

// BulkLoad builds a tree in one go using sort-tile-recursive packing. The
// result is better balanced than inserting the items one at a time, and it
// accepts further Insert and Delete calls like any other tree.
func BulkLoad(items []BulkItem) *RTree {
	t := &RTree{count: len(items)}
	if len(items) == 0 {
		return t
	}

	level := make([]entry, len(items))
	for i, item := range items {
		level[i] = entry{box: item.Box, data: item.RecordID}
	}

	isLeaf := true
	for {
		groups := strGroups(level)
		next := make([]entry, 0, len(groups))
		for _, group := range groups {
			t.nodes = append(t.nodes, node{isLeaf: isLeaf})
			idx := len(t.nodes)
			for _, e := range group {
				if isLeaf {
					t.appendRecord(idx, e.box, e.data)
				} else {
					t.appendChild(idx, e.box, e.data)
				}
			}
			next = append(next, entry{box: calculateBound(t.node(idx)), data: idx})
		}
		if len(next) == 1 {
			t.root = next[0].data
			return t
		}
		level = next
		isLeaf = false
	}
}

// strGroups tiles the entries into vertical slices by x, then packs each
// slice by y.
func strGroups(entries []entry) [][]entry {
	numNodes := (len(entries) + maxChildren - 1) / maxChildren
	numSlices := int(math.Ceil(math.Sqrt(float64(numNodes))))

	sort.Slice(entries, func(i, j int) bool {
		return centerX(entries[i].box) < centerX(entries[j].box)
	})

	var groups [][]entry
	for _, slice := range evenChunks(entries, numSlices) {
		sort.Slice(slice, func(i, j int) bool {
			return centerY(slice[i].box) < centerY(slice[j].box)
		})
		groups = append(groups, evenChunks(slice, (len(slice)+maxChildren-1)/maxChildren)...)
	}
	return groups
}

// evenChunks splits entries into k runs whose lengths differ by at most one,
// so no node ends up under-full next to a full one.
func evenChunks(entries []entry, k int) [][]entry {
	chunks := make([][]entry, 0, k)
	for i := 0; i < k; i++ {
		lo := i * len(entries) / k
		hi := (i + 1) * len(entries) / k
		if lo < hi {
			chunks = append(chunks, entries[lo:hi])
		}
	}
	return chunks
}

func centerX(b orb.Bound) float64 { return (b.Min[0] + b.Max[0]) / 2 }
func centerY(b orb.Bound) float64 { return (b.Min[1] + b.Max[1]) / 2 }
