package graph

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal"
	"github.com/paulmach/orb"
)

// RingRef addresses a ring of an areal input: the polygon's position in its
// multipolygon (0 for a lone polygon), and the ring's position in the polygon
// (0 is the shell).
type RingRef struct {
	Polygon, Ring int
}

// GeometryGraph turns one input geometry into labelled edges ready for
// noding. Points become isolated nodes.
type GeometryGraph struct {
	ArgIndex int
	Geometry orb.Geometry
	Edges    []*Edge
	// Coordinates of Point and MultiPoint members
	Points []orb.Point

	// Set when a line or ring has too few distinct points to form an edge.
	// The offending ring or line is left out of the graph.
	TooFewPoints bool
	InvalidPoint orb.Point

	factory     algorithm.Factory
	ringEdges   map[RingRef]*Edge
	polygonSeen int
}

func NewGeometryGraph(argIndex int, g orb.Geometry, f algorithm.Factory) *GeometryGraph {
	gg := &GeometryGraph{
		ArgIndex:  argIndex,
		Geometry:  g,
		factory:   f,
		ringEdges: make(map[RingRef]*Edge),
	}
	if g != nil {
		gg.add(g)
	}
	return gg
}

func (gg *GeometryGraph) add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		gg.Points = append(gg.Points, gg.factory.LineString([]orb.Point{g})...)
	case orb.MultiPoint:
		gg.Points = append(gg.Points, gg.factory.LineString(g)...)
	case orb.LineString:
		gg.addLineString(g)
	case orb.MultiLineString:
		for _, ls := range g {
			gg.addLineString(ls)
		}
	case orb.Ring:
		gg.addRingAsLine(g)
	case orb.Polygon:
		gg.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			gg.addPolygon(p)
		}
	case orb.Bound:
		gg.addPolygon(g.ToPolygon())
	case orb.Collection:
		for _, member := range g {
			gg.add(member)
		}
	default:
		internal.Fatalf("unsupported geometry type %T", g)
	}
}

func (gg *GeometryGraph) tooFew(pts []orb.Point) {
	gg.TooFewPoints = true
	if len(pts) > 0 {
		gg.InvalidPoint = pts[0]
	}
}

// precise rounds pts with the factory, then drops the repeated points that
// rounding may have created.
func (gg *GeometryGraph) precise(pts []orb.Point) []orb.Point {
	return algorithm.RemoveRepeatedPoints(gg.factory.LineString(pts))
}

func (gg *GeometryGraph) addLineString(ls orb.LineString) {
	if len(ls) == 0 {
		return
	}
	pts := gg.precise(ls)
	if len(pts) < 2 {
		gg.tooFew(pts)
		return
	}
	gg.insertEdge(NewEdge(pts, LineLabel(gg.ArgIndex, algorithm.Interior)))
}

func (gg *GeometryGraph) addRingAsLine(r orb.Ring) {
	if len(r) == 0 {
		return
	}
	pts := gg.precise(r)
	if len(pts) < 4 {
		gg.tooFew(pts)
		return
	}
	gg.insertEdge(NewEdge(pts, LineLabel(gg.ArgIndex, algorithm.Boundary)))
}

func (gg *GeometryGraph) addPolygon(p orb.Polygon) {
	polygon := gg.polygonSeen
	gg.polygonSeen++
	for i, r := range p {
		if i == 0 {
			gg.addPolygonRing(RingRef{polygon, i}, r, algorithm.Exterior, algorithm.Interior)
		} else {
			// Holes are inside out
			gg.addPolygonRing(RingRef{polygon, i}, r, algorithm.Interior, algorithm.Exterior)
		}
	}
}

// The ring's sides are given for a clockwise ring, and swapped if it turns
// out to run counterclockwise.
func (gg *GeometryGraph) addPolygonRing(ref RingRef, r orb.Ring, cwLeft, cwRight algorithm.Location) {
	if len(r) == 0 {
		return
	}
	pts := gg.precise(r)
	if len(pts) < 4 {
		gg.tooFew(pts)
		return
	}
	left, right := cwLeft, cwRight
	if algorithm.IsCCW(pts) {
		left, right = cwRight, cwLeft
	}
	e := NewEdge(pts, AreaLabel(gg.ArgIndex, algorithm.Boundary, left, right))
	gg.ringEdges[ref] = e
	gg.insertEdge(e)
}

func (gg *GeometryGraph) insertEdge(e *Edge) {
	gg.Edges = append(gg.Edges, e)
}

// RingEdge finds the edge built from a polygon ring.
func (gg *GeometryGraph) RingEdge(ref RingRef) (*Edge, bool) {
	e, ok := gg.ringEdges[ref]
	return e, ok
}

func (gg *GeometryGraph) isAreal() bool {
	switch gg.Geometry.(type) {
	case orb.Ring, orb.Polygon, orb.MultiPolygon, orb.Bound:
		return true
	}
	return false
}

// ComputeSelfNodes records the intersections of the graph's edges with each
// other. Areal inputs only compare different rings unless
// computeRingSelfNodes is set; lines always compare each edge with itself too.
func (gg *GeometryGraph) ComputeSelfNodes(li algorithm.LineIntersector, computeRingSelfNodes, doneWhenProper bool) *SegmentIntersector {
	si := NewSegmentIntersector(li, true, false)
	si.DoneWhenProper = doneWhenProper
	computeAllSegments := computeRingSelfNodes || !gg.isAreal()
	NewSweepLineIntersector().ComputeIntersections(gg.Edges, si, computeAllSegments)
	return si
}

// ComputeEdgeIntersections records the intersections between this graph's
// edges and other's.
func (gg *GeometryGraph) ComputeEdgeIntersections(other *GeometryGraph, li algorithm.LineIntersector, includeProper bool) *SegmentIntersector {
	si := NewSegmentIntersector(li, includeProper, true)
	NewSweepLineIntersector().ComputeIntersectionsBetween(gg.Edges, other.Edges, si)
	return si
}

// SplitEdges re-nodes every edge at its intersections.
func (gg *GeometryGraph) SplitEdges() []*Edge {
	return ComputeSplitEdges(gg.Edges, gg.factory)
}

// Noded builds a planar graph of the split edges. ComputeSelfNodes must have
// been called.
func (gg *GeometryGraph) Noded() *PlanarGraph {
	pg := NewPlanarGraph()
	pg.AddEdges(gg.SplitEdges())
	for _, p := range gg.Points {
		pg.AddNode(p)
	}
	return pg
}
