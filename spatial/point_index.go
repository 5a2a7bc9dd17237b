package spatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

type pointItem struct {
	p  orb.Point
	id int
}

func (i *pointItem) Point() orb.Point { return i.p }

// PointIndex is a quadtree of point items. The quadtree needs its bound up
// front, so inserting outside of it rebuilds the tree over a larger bound.
//
// Under the Index contract, inserted bounds are expected to be points; the
// center of the bound is what gets indexed.
type PointIndex struct {
	tree  *quadtree.Quadtree
	items map[int]*pointItem
}

func NewPointIndex(bound orb.Bound) *PointIndex {
	return &PointIndex{
		tree:  quadtree.New(bound),
		items: make(map[int]*pointItem),
	}
}

func (x *PointIndex) Len() int {
	return len(x.items)
}

func (x *PointIndex) Insert(b orb.Bound, id int) {
	x.InsertPoint(b.Center(), id)
}

func (x *PointIndex) Remove(b orb.Bound, id int) bool {
	return x.RemovePoint(b.Center(), id)
}

func (x *PointIndex) Query(b orb.Bound) []int {
	if x.tree == nil {
		return nil
	}
	var result []int
	for _, p := range x.tree.InBound(nil, b) {
		result = append(result, p.(*pointItem).id)
	}
	return result
}

func (x *PointIndex) InsertPoint(p orb.Point, id int) {
	item := &pointItem{p: p, id: id}
	if x.tree == nil {
		x.tree = quadtree.New(orb.Bound{Min: p, Max: p}.Pad(1))
	}
	if err := x.tree.Add(item); err == quadtree.ErrPointOutsideOfBounds {
		x.grow(p)
		x.tree.Add(item)
	}
	if x.items == nil {
		x.items = make(map[int]*pointItem)
	}
	x.items[id] = item
}

func (x *PointIndex) RemovePoint(p orb.Point, id int) bool {
	if _, ok := x.items[id]; !ok || x.tree == nil {
		return false
	}
	removed := x.tree.Remove(&pointItem{p: p, id: id}, func(q orb.Pointer) bool {
		return q.(*pointItem).id == id
	})
	if removed {
		delete(x.items, id)
	}
	return removed
}

// Nearest returns up to k items within maxDistance of p, closest first.
func (x *PointIndex) Nearest(p orb.Point, k int, maxDistance float64) []int {
	if x.tree == nil {
		return nil
	}
	var result []int
	for _, q := range x.tree.KNearest(nil, p, k, maxDistance) {
		result = append(result, q.(*pointItem).id)
	}
	return result
}

// grow doubles the bound (at least) until it contains p, then reinserts
// everything.
func (x *PointIndex) grow(p orb.Point) {
	bound := x.tree.Bound().Extend(p)
	pad := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	if pad == 0 {
		pad = 1
	}
	x.tree = quadtree.New(bound.Pad(pad / 2))
	for _, item := range x.items {
		x.tree.Add(item)
	}
}
