package spatial

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// node is a node in an R-Tree. nodes can either be leaf nodes holding entries
// for terminal items, or intermediate nodes holding entries for more nodes.
type node struct {
	entries    [1 + maxChildren]entry
	numEntries int
	parent     int
	isLeaf     bool
}

// entry is an entry under a node, leading either to terminal items, or more nodes.
type entry struct {
	box orb.Bound

	// For leaf nodes, this is a recordID. For non-leaf nodes, it is the child.
	data int
}

func (t *RTree) appendRecord(nodeIdx int, box orb.Bound, recordID int) {
	node := t.node(nodeIdx)
	node.entries[node.numEntries] = entry{box: box, data: recordID}
	node.numEntries++
}

func (t *RTree) appendChild(nodeIdx int, box orb.Bound, childIdx int) {
	node := t.node(nodeIdx)
	node.entries[node.numEntries] = entry{box: box, data: childIdx}
	node.numEntries++
	t.node(childIdx).parent = nodeIdx
}

// nodeDepth calculates the number of layers of nodes in the subtree rooted at the node.
func (t *RTree) nodeDepth(nodeIdx int) int {
	node := t.node(nodeIdx)
	var d = 1
	for !node.isLeaf {
		d++
		node = t.node(node.entries[0].data)
	}
	return d
}

// RTree is an in-memory R-Tree. It holds record ID and bounding box pairs
// (the records themselves live with the caller). Its zero value is an empty
// R-Tree. Node storage is an arena; removed nodes are not reclaimed until the
// tree is rebuilt with BulkLoad.
type RTree struct {
	nodes []node // 1-indexed, allowing 0 to represent "nil"
	root  int
	count int
}

// node converts a 1-indexed node index into a node pointer
func (t *RTree) node(nodeIdx int) *node {
	return &t.nodes[nodeIdx-1]
}

func (t *RTree) hasRoot() bool {
	return t.root != 0
}

// Len is the number of records in the tree.
func (t *RTree) Len() int {
	return t.count
}

// Stop is a special sentinel error that can be used to stop a search operation
// without any error.
var Stop = errors.New("stop")

// RangeSearch looks for any items in the tree that overlap with the given
// bounding box. The callback is called with the record ID for each found item.
// If an error is returned from the callback then the search is terminated
// early. Any error returned from the callback is returned by RangeSearch,
// except for the case where the special Stop sentinel error is returned (in
// which case nil will be returned from RangeSearch).
func (t *RTree) RangeSearch(box orb.Bound, callback func(recordID int) error) error {
	if !t.hasRoot() {
		return nil
	}
	// Explicit stack rather than recursion; depth is small but the closure
	// form made the early exit awkward.
	stack := []int{t.root}
	for len(stack) > 0 {
		n := t.node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		for i := 0; i < n.numEntries; i++ {
			entry := n.entries[i]
			if !overlap(entry.box, box) {
				continue
			}
			if !n.isLeaf {
				stack = append(stack, entry.data)
				continue
			}
			if err := callback(entry.data); err == Stop {
				return nil
			} else if err != nil {
				return err
			}
		}
	}
	return nil
}

// Query collects every record whose box overlaps b.
func (t *RTree) Query(b orb.Bound) []int {
	var result []int
	t.RangeSearch(b, func(recordID int) error {
		result = append(result, recordID)
		return nil
	})
	return result
}

// Remove is Delete under the Index contract.
func (t *RTree) Remove(b orb.Bound, recordID int) bool {
	return t.Delete(b, recordID)
}

// Extent gives the Box that most closely bounds the RTree. If the RTree is
// empty, then false is returned.
func (t *RTree) Extent() (orb.Bound, bool) {
	if !t.hasRoot() {
		return orb.Bound{}, false
	}
	root := t.node(t.root)
	if root.numEntries == 0 {
		return orb.Bound{}, false
	}
	return calculateBound(root), true
}
