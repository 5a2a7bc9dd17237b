package graph

import (
	"sort"
)

// An EdgeSetIntersector finds all the segment intersections within one set of
// edges, or between two sets, and passes them to a SegmentIntersector.
type EdgeSetIntersector interface {
	// testAllSegments also compares each edge against itself.
	ComputeIntersections(edges []*Edge, si *SegmentIntersector, testAllSegments bool)
	ComputeIntersectionsBetween(edges0, edges1 []*Edge, si *SegmentIntersector)
}

var (
	_ EdgeSetIntersector = SimpleEdgeSetIntersector{}
	_ EdgeSetIntersector = (*SweepLineIntersector)(nil)
)

// SimpleEdgeSetIntersector compares every segment with every other one. It is
// quadratic, and mostly useful for checking the faster intersectors.
type SimpleEdgeSetIntersector struct{}

func (SimpleEdgeSetIntersector) ComputeIntersections(edges []*Edge, si *SegmentIntersector, testAllSegments bool) {
	for _, e0 := range edges {
		for _, e1 := range edges {
			if testAllSegments || e0 != e1 {
				computeAllPairs(e0, e1, si)
				if si.Done() {
					return
				}
			}
		}
	}
}

func (SimpleEdgeSetIntersector) ComputeIntersectionsBetween(edges0, edges1 []*Edge, si *SegmentIntersector) {
	for _, e0 := range edges0 {
		for _, e1 := range edges1 {
			computeAllPairs(e0, e1, si)
			if si.Done() {
				return
			}
		}
	}
}

func computeAllPairs(e0, e1 *Edge, si *SegmentIntersector) {
	for i0 := 0; i0 < len(e0.Points)-1; i0++ {
		for i1 := 0; i1 < len(e1.Points)-1; i1++ {
			si.AddIntersections(e0, i0, e1, i1)
			if si.Done() {
				return
			}
		}
	}
}

type sweepEvent struct {
	x      float64
	insert *sweepEvent // nil for insert events
	// Index of the paired delete event, for insert events
	deleteIndex int
	chain       MonotoneChain
	// Chains in the same group are never compared. -1 is no group.
	group int
}

func (ev *sweepEvent) isInsert() bool {
	return ev.insert == nil
}

func (ev *sweepEvent) sameGroup(other *sweepEvent) bool {
	return ev.group >= 0 && ev.group == other.group
}

// SweepLineIntersector orders monotone chains by x and only compares chains
// whose x ranges overlap. Each call builds its events from scratch.
type SweepLineIntersector struct {
	events []*sweepEvent
	// NumOverlaps counts the chain pairs actually compared.
	NumOverlaps int
}

func NewSweepLineIntersector() *SweepLineIntersector {
	return &SweepLineIntersector{}
}

func (s *SweepLineIntersector) ComputeIntersections(edges []*Edge, si *SegmentIntersector, testAllSegments bool) {
	s.events = s.events[:0]
	for i, e := range edges {
		group := i
		if testAllSegments {
			group = -1
		}
		s.addEdge(e, group)
	}
	s.run(si)
}

func (s *SweepLineIntersector) ComputeIntersectionsBetween(edges0, edges1 []*Edge, si *SegmentIntersector) {
	s.events = s.events[:0]
	for _, e := range edges0 {
		s.addEdge(e, 0)
	}
	for _, e := range edges1 {
		s.addEdge(e, 1)
	}
	s.run(si)
}

func (s *SweepLineIntersector) addEdge(e *Edge, group int) {
	for _, mc := range e.Chains() {
		insert := &sweepEvent{x: mc.MinX(), chain: mc, group: group}
		s.events = append(s.events, insert, &sweepEvent{x: mc.MaxX(), insert: insert, chain: mc, group: group})
	}
}

func (s *SweepLineIntersector) prepareEvents() {
	// Inserts sort before deletes at the same x, so chains that only touch
	// still overlap
	sort.SliceStable(s.events, func(i, j int) bool {
		a, b := s.events[i], s.events[j]
		if a.x != b.x {
			return a.x < b.x
		}
		return a.isInsert() && !b.isInsert()
	})
	for i, ev := range s.events {
		if !ev.isInsert() {
			ev.insert.deleteIndex = i
		}
	}
}

func (s *SweepLineIntersector) run(si *SegmentIntersector) {
	s.NumOverlaps = 0
	s.prepareEvents()
	for i, ev := range s.events {
		if ev.isInsert() {
			s.processOverlaps(i, ev.deleteIndex, ev, si)
		}
		if si.Done() {
			break
		}
	}
}

// processOverlaps compares ev0's chain with every chain inserted while it is
// active. Chains inserted before ev0 that are still active compare against ev0
// from their own insert event.
func (s *SweepLineIntersector) processOverlaps(start, end int, ev0 *sweepEvent, si *SegmentIntersector) {
	for i := start; i < end; i++ {
		ev1 := s.events[i]
		if !ev1.isInsert() || ev0.sameGroup(ev1) {
			continue
		}
		ev0.chain.ComputeIntersections(ev1.chain, si)
		s.NumOverlaps++
		if si.Done() {
			return
		}
	}
}
