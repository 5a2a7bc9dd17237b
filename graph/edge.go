package graph

import (
	"fmt"
	"strings"

	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
)

// An Edge is a vertex sequence taking part in noding. Intersections found
// against it are collected in its intersection list, which is later used to
// split it into noded child edges.
type Edge struct {
	Points        []orb.Point
	Label         Label
	Intersections *EdgeIntersectionList
	// Isolated stays true until an intersection is recorded against the edge.
	Isolated bool

	chainStarts []int
	bound       *orb.Bound
}

func NewEdge(pts []orb.Point, label Label) *Edge {
	e := &Edge{
		Points:   pts,
		Label:    label,
		Isolated: true,
	}
	e.Intersections = &EdgeIntersectionList{edge: e}
	return e
}

func (e *Edge) NumPoints() int {
	return len(e.Points)
}

func (e *Edge) IsClosed() bool {
	return len(e.Points) > 1 && e.Points[0] == e.Points[len(e.Points)-1]
}

func (e *Edge) Bound() orb.Bound {
	if e.bound == nil {
		b := algorithm.PointsBound(e.Points)
		e.bound = &b
	}
	return *e.bound
}

// ChainStarts lazily computes the monotone chain decomposition.
func (e *Edge) ChainStarts() []int {
	if e.chainStarts == nil {
		e.chainStarts = ChainStartIndices(e.Points)
	}
	return e.chainStarts
}

func (e *Edge) Chains() []MonotoneChain {
	starts := e.ChainStarts()
	chains := make([]MonotoneChain, 0, len(starts)-1)
	for i := 0; i < len(starts)-1; i++ {
		chains = append(chains, MonotoneChain{Edge: e, Start: starts[i], End: starts[i+1]})
	}
	return chains
}

// AddIntersections records every intersection the intersector currently
// holds. geomIndex says which of the intersector's two input segments belongs
// to this edge.
func (e *Edge) AddIntersections(li algorithm.LineIntersector, segIndex, geomIndex int) {
	for i := 0; i < li.IntersectionNum(); i++ {
		e.AddIntersection(li, segIndex, geomIndex, i)
	}
}

// AddIntersection records one intersection. A point sitting on the end vertex
// of the segment is filed under the next segment at distance zero, so a vertex
// always has a single representation in the list.
func (e *Edge) AddIntersection(li algorithm.LineIntersector, segIndex, geomIndex, intIndex int) {
	intPt := li.Intersection(intIndex)
	normalizedSegIndex := segIndex
	dist := li.EdgeDistance(geomIndex, intIndex)

	nextSegIndex := normalizedSegIndex + 1
	if nextSegIndex < len(e.Points) && intPt == e.Points[nextSegIndex] {
		normalizedSegIndex = nextSegIndex
		dist = 0
	}
	e.Intersections.Add(intPt, normalizedSegIndex, dist)
}

// Equal reports whether the edges have the same points, in either direction.
func (e *Edge) Equal(other *Edge) bool {
	if len(e.Points) != len(other.Points) {
		return false
	}
	forward, backward := true, true
	n := len(e.Points)
	for i := range e.Points {
		if e.Points[i] != other.Points[i] {
			forward = false
		}
		if e.Points[i] != other.Points[n-1-i] {
			backward = false
		}
		if !forward && !backward {
			return false
		}
	}
	return true
}

func (e *Edge) String() string {
	var sb strings.Builder
	sb.WriteString("edge ")
	sb.WriteString(e.Label.String())
	sb.WriteString(": LINESTRING (")
	for i, p := range e.Points {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g %g", p[0], p[1])
	}
	sb.WriteString(")")
	return sb.String()
}
