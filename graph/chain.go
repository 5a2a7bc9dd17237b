package graph

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
)

// ChainStartIndices partitions pts into monotone chains: runs of segments
// whose directions all fall in one quadrant. The result holds the first index
// of every chain followed by the last vertex index, so chain i runs from
// result[i] to result[i+1].
//
// Zero length segments have no direction, so they extend whatever chain they
// are in.
func ChainStartIndices(pts []orb.Point) []int {
	if len(pts) == 0 {
		return nil
	}
	start := 0
	indices := []int{start}
	for {
		last := findChainEnd(pts, start)
		indices = append(indices, last)
		start = last
		if start >= len(pts)-1 {
			break
		}
	}
	return indices
}

func findChainEnd(pts []orb.Point, start int) int {
	safeStart := start
	for safeStart < len(pts)-1 && pts[safeStart] == pts[safeStart+1] {
		safeStart++
	}
	// Only repeated points remain
	if safeStart >= len(pts)-1 {
		return len(pts) - 1
	}

	chainQuad := algorithm.QuadrantOf(pts[safeStart], pts[safeStart+1])
	last := start + 1
	for last < len(pts) {
		if pts[last-1] != pts[last] {
			if algorithm.QuadrantOf(pts[last-1], pts[last]) != chainQuad {
				break
			}
		}
		last++
	}
	return last - 1
}

// A MonotoneChain is a run of an edge's segments, from vertex Start to vertex
// End. Segments inside one chain never cross each other, and the envelope of
// the chain is the envelope of its two end vertices.
type MonotoneChain struct {
	Edge       *Edge
	Start, End int
}

func (mc MonotoneChain) Bound() orb.Bound {
	return algorithm.SegmentBound(mc.Edge.Points[mc.Start], mc.Edge.Points[mc.End])
}

func (mc MonotoneChain) MinX() float64 {
	a, b := mc.Edge.Points[mc.Start][0], mc.Edge.Points[mc.End][0]
	if a < b {
		return a
	}
	return b
}

func (mc MonotoneChain) MaxX() float64 {
	a, b := mc.Edge.Points[mc.Start][0], mc.Edge.Points[mc.End][0]
	if a > b {
		return a
	}
	return b
}

type chainRange struct {
	start0, end0 int
	start1, end1 int
}

// ComputeIntersections feeds every pair of possibly intersecting segments of
// the two chains to si. Sub-ranges are halved until both are single segments,
// and pairs whose envelopes are disjoint are dropped along the way. The work
// list is an explicit stack so long chains can't blow up the call depth.
func (mc MonotoneChain) ComputeIntersections(other MonotoneChain, si *SegmentIntersector) {
	pts0 := mc.Edge.Points
	pts1 := other.Edge.Points

	stack := []chainRange{{mc.Start, mc.End, other.Start, other.End}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.end0-r.start0 == 1 && r.end1-r.start1 == 1 {
			si.AddIntersections(mc.Edge, r.start0, other.Edge, r.start1)
			if si.Done() {
				return
			}
			continue
		}
		if !envelopesOverlap(pts0[r.start0], pts0[r.end0], pts1[r.start1], pts1[r.end1]) {
			continue
		}

		mid0 := (r.start0 + r.end0) / 2
		mid1 := (r.start1 + r.end1) / 2
		if r.start0 < mid0 {
			if r.start1 < mid1 {
				stack = append(stack, chainRange{r.start0, mid0, r.start1, mid1})
			}
			if mid1 < r.end1 {
				stack = append(stack, chainRange{r.start0, mid0, mid1, r.end1})
			}
		}
		if mid0 < r.end0 {
			if r.start1 < mid1 {
				stack = append(stack, chainRange{mid0, r.end0, r.start1, mid1})
			}
			if mid1 < r.end1 {
				stack = append(stack, chainRange{mid0, r.end0, mid1, r.end1})
			}
		}
	}
}

func envelopesOverlap(p0, p1, q0, q1 orb.Point) bool {
	a := algorithm.SegmentBound(p0, p1)
	b := algorithm.SegmentBound(q0, q1)
	return a.Intersects(b)
}
