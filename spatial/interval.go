package spatial

import (
	"sort"

	"github.com/paulmach/orb"
)

type interval struct {
	box orb.Bound
	id  int
}

// IntervalList keeps items sorted by their minimum x. A query binary searches
// for the first item that could reach the query box and scans forward until
// items start beyond it. It suits the long thin sweeps the noder makes better
// than the R-tree does.
type IntervalList struct {
	items []interval
	// widest x extent ever inserted; it never shrinks, which only costs scan
	// length
	maxWidth float64
}

func (l *IntervalList) Len() int {
	return len(l.items)
}

func (l *IntervalList) Insert(b orb.Bound, id int) {
	i := sort.Search(len(l.items), func(i int) bool {
		return l.items[i].box.Min[0] > b.Min[0]
	})
	l.items = append(l.items, interval{})
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = interval{box: b, id: id}
	if w := b.Max[0] - b.Min[0]; w > l.maxWidth {
		l.maxWidth = w
	}
}

func (l *IntervalList) Remove(b orb.Bound, id int) bool {
	for i := l.lowerBound(b.Min[0]); i < len(l.items) && l.items[i].box.Min[0] <= b.Max[0]; i++ {
		if l.items[i].id == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *IntervalList) Query(b orb.Bound) []int {
	var result []int
	for i := l.lowerBound(b.Min[0] - l.maxWidth); i < len(l.items); i++ {
		item := l.items[i]
		if item.box.Min[0] > b.Max[0] {
			break
		}
		if overlap(item.box, b) {
			result = append(result, item.id)
		}
	}
	return result
}

func (l *IntervalList) lowerBound(x float64) int {
	return sort.Search(len(l.items), func(i int) bool {
		return l.items[i].box.Min[0] >= x
	})
}
