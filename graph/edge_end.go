package graph

import (
	"sort"

	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
)

// An EdgeEnd is the stub of an edge leaving a node. Edge ends are used to
// check labelling around nodes before the edges are split.
type EdgeEnd struct {
	Edge   *Edge
	P0, P1 orb.Point
	Label  Label
}

// An EdgeEndBundle groups the edge ends at a node that point the same way. Its
// label summarises theirs.
type EdgeEndBundle struct {
	Ends  []*EdgeEnd
	Label Label
}

func (b *EdgeEndBundle) direction() (orb.Point, orb.Point) {
	return b.Ends[0].P0, b.Ends[0].P1
}

func (b *EdgeEndBundle) computeLabel() {
	isArea := false
	for _, e := range b.Ends {
		if e.Label.IsArea(0) || e.Label.IsArea(1) {
			isArea = true
		}
	}
	var label Label
	for geomIndex := 0; geomIndex < 2; geomIndex++ {
		label.SetLocation(geomIndex, On, b.computeLocationOn(geomIndex))
		if isArea {
			label.SetLocation(geomIndex, Left, b.computeLocationSide(geomIndex, Left))
			label.SetLocation(geomIndex, Right, b.computeLocationSide(geomIndex, Right))
		}
	}
	b.Label = label
}

// An odd number of boundaries through the node is a boundary, an even number
// cancels out.
func (b *EdgeEndBundle) computeLocationOn(geomIndex int) algorithm.Location {
	boundaryCount := 0
	foundInterior := false
	for _, e := range b.Ends {
		switch e.Label.Location(geomIndex, On) {
		case algorithm.Boundary:
			boundaryCount++
		case algorithm.Interior:
			foundInterior = true
		}
	}
	switch {
	case boundaryCount > 0 && boundaryCount%2 == 1:
		return algorithm.Boundary
	case boundaryCount > 0 || foundInterior:
		return algorithm.Interior
	}
	return algorithm.None
}

// Interior on a side wins over exterior.
func (b *EdgeEndBundle) computeLocationSide(geomIndex int, side Position) algorithm.Location {
	loc := algorithm.None
	for _, e := range b.Ends {
		if !e.Label.IsArea(geomIndex) {
			continue
		}
		switch e.Label.Location(geomIndex, side) {
		case algorithm.Interior:
			return algorithm.Interior
		case algorithm.Exterior:
			loc = algorithm.Exterior
		}
	}
	return loc
}

// EdgeEndStar holds the bundles at one node, sorted counterclockwise.
type EdgeEndStar struct {
	Coord   orb.Point
	Bundles []*EdgeEndBundle
}

func (s *EdgeEndStar) insert(e *EdgeEnd) {
	i := sort.Search(len(s.Bundles), func(i int) bool {
		_, p1 := s.Bundles[i].direction()
		return algorithm.CompareDirection(s.Coord, p1, e.P1) >= 0
	})
	if i < len(s.Bundles) {
		_, p1 := s.Bundles[i].direction()
		if algorithm.CompareDirection(s.Coord, p1, e.P1) == 0 {
			s.Bundles[i].Ends = append(s.Bundles[i].Ends, e)
			return
		}
	}
	s.Bundles = append(s.Bundles, nil)
	copy(s.Bundles[i+1:], s.Bundles[i:])
	s.Bundles[i] = &EdgeEndBundle{Ends: []*EdgeEnd{e}}
}

// IsAreaLabelsConsistent computes the bundle labels, then walks around the
// node checking that every bundle separates two different locations, and that
// the location on the right of each bundle is the one left of the previous.
func (s *EdgeEndStar) IsAreaLabelsConsistent(geomIndex int) bool {
	if len(s.Bundles) == 0 {
		return true
	}
	for _, b := range s.Bundles {
		b.computeLabel()
	}

	startLoc := s.Bundles[len(s.Bundles)-1].Label.Location(geomIndex, Left)
	if startLoc == algorithm.None {
		return false
	}
	currLoc := startLoc
	for _, b := range s.Bundles {
		if !b.Label.IsArea(geomIndex) {
			return false
		}
		leftLoc := b.Label.Location(geomIndex, Left)
		rightLoc := b.Label.Location(geomIndex, Right)
		if leftLoc == rightLoc {
			return false
		}
		if rightLoc != currLoc {
			return false
		}
		currLoc = leftLoc
	}
	return true
}

// DuplicateBundle finds a bundle holding more than one edge end, which means
// two edges run along each other out of this node.
func (s *EdgeEndStar) DuplicateBundle() (*EdgeEndBundle, bool) {
	for _, b := range s.Bundles {
		if len(b.Ends) > 1 {
			return b, true
		}
	}
	return nil, false
}

// BuildEdgeEndStars creates the edge ends on both sides of every recorded
// intersection, and gathers them into stars ordered by node coordinate.
// Endpoints are added to each edge's intersection list first.
func BuildEdgeEndStars(edges []*Edge) []*EdgeEndStar {
	starAt := make(map[orb.Point]*EdgeEndStar)
	var stars []*EdgeEndStar
	add := func(e *EdgeEnd) {
		s, ok := starAt[e.P0]
		if !ok {
			s = &EdgeEndStar{Coord: e.P0}
			starAt[e.P0] = s
			stars = append(stars, s)
		}
		s.insert(e)
	}

	for _, edge := range edges {
		for _, e := range computeEdgeEnds(edge) {
			add(e)
		}
	}

	sort.Slice(stars, func(i, j int) bool {
		a, b := stars[i].Coord, stars[j].Coord
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
	return stars
}

func computeEdgeEnds(edge *Edge) []*EdgeEnd {
	edge.Intersections.AddEndpoints()
	items := edge.Intersections.Items()

	var ends []*EdgeEnd
	for i, curr := range items {
		var prev, next *EdgeIntersection
		if i > 0 {
			prev = items[i-1]
		}
		if i < len(items)-1 {
			next = items[i+1]
		}
		if e := edgeEndForPrev(edge, curr, prev); e != nil {
			ends = append(ends, e)
		}
		if e := edgeEndForNext(edge, curr, next); e != nil {
			ends = append(ends, e)
		}
	}
	return ends
}

// The stub pointing back along the edge from curr. There is none at the start
// of the edge.
func edgeEndForPrev(edge *Edge, curr, prev *EdgeIntersection) *EdgeEnd {
	iPrev := curr.SegmentIndex
	if curr.Dist == 0 {
		if iPrev == 0 {
			return nil
		}
		iPrev--
	}
	pPrev := edge.Points[iPrev]
	// The previous intersection is closer than the previous vertex
	if prev != nil && prev.SegmentIndex >= iPrev {
		pPrev = prev.Coord
	}
	return &EdgeEnd{Edge: edge, P0: curr.Coord, P1: pPrev, Label: edge.Label.Flipped()}
}

// The stub pointing forward along the edge from curr. There is none at the end
// of the edge.
func edgeEndForNext(edge *Edge, curr, next *EdgeIntersection) *EdgeEnd {
	iNext := curr.SegmentIndex + 1
	if iNext >= len(edge.Points) && next == nil {
		return nil
	}
	pNext := edge.Points[iNext]
	if next != nil && next.SegmentIndex == curr.SegmentIndex {
		pNext = next.Coord
	}
	return &EdgeEnd{Edge: edge, P0: curr.Coord, P1: pNext, Label: edge.Label}
}
