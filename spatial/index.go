package spatial

import "github.com/paulmach/orb"

// Index is the contract the rest of the engine relies on. Items are integer
// IDs; the caller owns the records they refer to. Query may return items whose
// bounds overlap the query without the items themselves intersecting it, so
// callers must filter. It never misses an item whose bound overlaps.
type Index interface {
	Insert(b orb.Bound, id int)
	Remove(b orb.Bound, id int) bool
	Query(b orb.Bound) []int
}

var (
	_ Index = (*RTree)(nil)
	_ Index = (*IntervalList)(nil)
)

var _ Index = (*PointIndex)(nil)
