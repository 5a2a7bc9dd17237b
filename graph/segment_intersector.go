package graph

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
)

// SegmentIntersector tests segment pairs handed to it by an edge set
// intersector, and records the intersections it finds on both edges.
type SegmentIntersector struct {
	li algorithm.LineIntersector
	// Record proper intersections on the edges, not only note that they exist
	includeProper bool
	// Clear Edge.Isolated on both edges when they touch
	recordIsolated bool
	// Stop the search at the first proper intersection
	DoneWhenProper bool

	hasIntersection bool
	hasProper       bool
	properPoint     orb.Point
	done            bool

	NumTests         int
	NumIntersections int
}

func NewSegmentIntersector(li algorithm.LineIntersector, includeProper, recordIsolated bool) *SegmentIntersector {
	return &SegmentIntersector{
		li:             li,
		includeProper:  includeProper,
		recordIsolated: recordIsolated,
	}
}

func (si *SegmentIntersector) Done() bool {
	return si.done
}

func (si *SegmentIntersector) HasIntersection() bool {
	return si.hasIntersection
}

func (si *SegmentIntersector) HasProperIntersection() bool {
	return si.hasProper
}

// ProperIntersectionPoint is the last proper intersection found.
func (si *SegmentIntersector) ProperIntersectionPoint() orb.Point {
	return si.properPoint
}

// AddIntersections tests segment seg0 of e0 against segment seg1 of e1.
func (si *SegmentIntersector) AddIntersections(e0 *Edge, seg0 int, e1 *Edge, seg1 int) {
	if e0 == e1 && seg0 == seg1 {
		return
	}
	si.NumTests++
	p00 := e0.Points[seg0]
	p01 := e0.Points[seg0+1]
	p10 := e1.Points[seg1]
	p11 := e1.Points[seg1+1]

	si.li.ComputeIntersection(p00, p01, p10, p11)
	if !si.li.HasIntersection() {
		return
	}
	if si.recordIsolated {
		e0.Isolated = false
		e1.Isolated = false
	}
	si.NumIntersections++

	if si.isTrivialIntersection(e0, seg0, e1, seg1) {
		return
	}
	si.hasIntersection = true
	if si.includeProper || !si.li.IsProper() {
		e0.AddIntersections(si.li, seg0, 0)
		e1.AddIntersections(si.li, seg1, 1)
	}
	if si.li.IsProper() {
		si.properPoint = si.li.Intersection(0)
		si.hasProper = true
		if si.DoneWhenProper {
			si.done = true
		}
	}
}

// A trivial intersection is the shared vertex of two neighbouring segments of
// the same edge. For a closed edge the first and last segments are neighbours
// too.
func (si *SegmentIntersector) isTrivialIntersection(e0 *Edge, seg0 int, e1 *Edge, seg1 int) bool {
	if e0 != e1 || si.li.IntersectionNum() != 1 {
		return false
	}
	if isAdjacentSegments(seg0, seg1) {
		return true
	}
	if e0.IsClosed() {
		maxSegIndex := len(e0.Points) - 2
		if (seg0 == 0 && seg1 == maxSegIndex) || (seg1 == 0 && seg0 == maxSegIndex) {
			return true
		}
	}
	return false
}

func isAdjacentSegments(i, j int) bool {
	d := i - j
	return d == 1 || d == -1
}
