package graph

import (
	"fmt"
	"sort"

	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
)

// An EdgeIntersection is a point on an edge where the edge will be split.
type EdgeIntersection struct {
	Coord orb.Point
	// The segment the point lies in. A point on a vertex belongs to the segment
	// starting there.
	SegmentIndex int
	// Edge distance of the point along its segment.
	Dist float64
}

// Compare orders intersections along the edge.
func (ei *EdgeIntersection) Compare(segIndex int, dist float64) int {
	switch {
	case ei.SegmentIndex < segIndex:
		return -1
	case ei.SegmentIndex > segIndex:
		return 1
	case ei.Dist < dist:
		return -1
	case ei.Dist > dist:
		return 1
	}
	return 0
}

func (ei *EdgeIntersection) String() string {
	return fmt.Sprintf("(%g %g) seg # = %d dist = %g", ei.Coord[0], ei.Coord[1], ei.SegmentIndex, ei.Dist)
}

// EdgeIntersectionList is kept sorted by segment index, then edge distance.
// Adding an intersection already present is a no-op.
type EdgeIntersectionList struct {
	edge  *Edge
	items []*EdgeIntersection
}

func (l *EdgeIntersectionList) Len() int {
	return len(l.items)
}

// Items returns the intersections in order. The slice must not be modified.
func (l *EdgeIntersectionList) Items() []*EdgeIntersection {
	return l.items
}

// Add inserts the intersection unless one with the same position exists, and
// returns whichever is in the list.
func (l *EdgeIntersectionList) Add(coord orb.Point, segIndex int, dist float64) *EdgeIntersection {
	i := sort.Search(len(l.items), func(i int) bool {
		return l.items[i].Compare(segIndex, dist) >= 0
	})
	if i < len(l.items) && l.items[i].Compare(segIndex, dist) == 0 {
		return l.items[i]
	}
	ei := &EdgeIntersection{Coord: coord, SegmentIndex: segIndex, Dist: dist}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = ei
	return ei
}

func (l *EdgeIntersectionList) IsIntersection(p orb.Point) bool {
	for _, ei := range l.items {
		if ei.Coord == p {
			return true
		}
	}
	return false
}

// AddEndpoints makes sure the list covers the whole edge.
func (l *EdgeIntersectionList) AddEndpoints() {
	pts := l.edge.Points
	if len(pts) == 0 {
		return
	}
	last := len(pts) - 1
	l.Add(pts[0], 0, 0)
	l.Add(pts[last], last, 0)
}

// SplitEdges cuts the edge at every intersection. Each child edge copies the
// parent's label, and is materialised through the factory.
func (l *EdgeIntersectionList) SplitEdges(f algorithm.Factory) []*Edge {
	l.AddEndpoints()

	var edges []*Edge
	for i := 1; i < len(l.items); i++ {
		// Rounding can pull two intersections onto one point
		if e := l.splitEdge(f, l.items[i-1], l.items[i]); len(e.Points) >= 2 {
			edges = append(edges, e)
		}
	}
	return edges
}

func (l *EdgeIntersectionList) splitEdge(f algorithm.Factory, ei0, ei1 *EdgeIntersection) *Edge {
	pts := l.edge.Points
	lastSegStartPt := pts[ei1.SegmentIndex]
	// The last intersection is only a new point if it isn't the vertex the
	// segment starts at
	useIntPt1 := ei1.Dist > 0 || ei1.Coord != lastSegStartPt

	childPts := make([]orb.Point, 0, ei1.SegmentIndex-ei0.SegmentIndex+2)
	childPts = append(childPts, ei0.Coord)
	for i := ei0.SegmentIndex + 1; i <= ei1.SegmentIndex; i++ {
		childPts = append(childPts, pts[i])
	}
	if useIntPt1 {
		childPts = append(childPts, ei1.Coord)
	}
	return NewEdge(algorithm.RemoveRepeatedPoints(f.LineString(childPts)), l.edge.Label)
}
