package feature

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// SplitEdge cuts an edge in two at the point of the line closest to at. The
// cut point becomes a vertex of both halves, so a point near the line pulls
// the line onto itself. Both halves keep the original feature, and the
// original edge ID is retired.
func (g *Graph) SplitEdge(id EdgeID, at orb.Point) (EdgeID, EdgeID, error) {
	e, ok := g.edges[id]
	if !ok {
		return 0, 0, errors.Errorf("no edge %d", id)
	}
	at = g.factory.LineString([]orb.Point{at})[0]

	line := e.Line
	_, seg := planar.DistanceFromWithIndex(line, at)
	if seg < 0 {
		return 0, 0, errors.Errorf("edge %d has no segments", id)
	}

	var first, second []orb.Point
	switch {
	case at == line[seg]:
		first = append(first, line[:seg+1]...)
		second = append(second, line[seg:]...)
	case at == line[seg+1]:
		first = append(first, line[:seg+2]...)
		second = append(second, line[seg+1:]...)
	default:
		first = append(append(first, line[:seg+1]...), at)
		second = append(append(second, at), line[seg+1:]...)
	}
	firstLine, err := g.materialize(first)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "cannot split edge %d at its end (%g %g)", id, at[0], at[1])
	}
	secondLine, err := g.materialize(second)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "cannot split edge %d at its end (%g %g)", id, at[0], at[1])
	}

	g.detach(e)
	a := g.insert(firstLine, e.Feature)
	b := g.insert(secondLine, e.Feature)
	return a, b, nil
}

// MergeEdges joins two edges meeting at a node that has no other edges. The
// result runs in keep's direction, with other reversed if it needs to be, and
// carries keep's feature. Both input IDs are retired.
func (g *Graph) MergeEdges(keep, other EdgeID) (EdgeID, error) {
	if keep == other {
		return 0, errors.Errorf("cannot merge edge %d with itself", keep)
	}
	k, ok := g.edges[keep]
	if !ok {
		return 0, errors.Errorf("no edge %d", keep)
	}
	o, ok := g.edges[other]
	if !ok {
		return 0, errors.Errorf("no edge %d", other)
	}

	touches := func(n NodeID) bool { return o.From == n || o.To == n }
	// Edges sharing both ends can only be joined where nothing else meets.
	joinable := func(n NodeID) bool { return touches(n) && g.Degree(n) == 2 }
	var line []orb.Point
	switch {
	case joinable(k.To):
		tail := orientedFrom(o, k.To)
		line = append(append(line, k.Line...), tail[1:]...)
	case joinable(k.From):
		head := orientedFrom(o, k.From)
		reverse(head)
		line = append(append(line, head...), k.Line[1:]...)
	case touches(k.To) || touches(k.From):
		return 0, errors.Errorf("edges %d and %d only meet at a junction", keep, other)
	default:
		return 0, errors.Errorf("edges %d and %d do not meet", keep, other)
	}

	g.detach(k)
	g.detach(o)
	return g.AddEdge(line, k.Feature)
}

// orientedFrom copies e's points, running away from n.
func orientedFrom(e *Edge, n NodeID) []orb.Point {
	pts := append([]orb.Point(nil), e.Line...)
	if e.From != n {
		reverse(pts)
	}
	return pts
}

func reverse(pts []orb.Point) {
	orb.LineString(pts).Reverse()
}

// ReplaceLine gives an edge new geometry, renoding its ends if they moved.
func (g *Graph) ReplaceLine(id EdgeID, line orb.LineString) error {
	e, ok := g.edges[id]
	if !ok {
		return errors.Errorf("no edge %d", id)
	}
	pts, err := g.materialize(line)
	if err != nil {
		return err
	}
	g.detach(e)
	e.Line = pts
	g.attach(e)
	return nil
}

// ReverseEdge flips an edge's direction. Its bound doesn't change, so the
// indices are left alone.
func (g *Graph) ReverseEdge(id EdgeID) error {
	e, ok := g.edges[id]
	if !ok {
		return errors.Errorf("no edge %d", id)
	}
	e.Line.Reverse()
	e.From, e.To = e.To, e.From
	return nil
}
