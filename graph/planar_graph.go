package graph

import (
	"fmt"
	"sort"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal"
	"github.com/osuushi/planar/internal/dbg"
	"github.com/paulmach/orb"
)

// The graph is an arena. Nodes, edges and directed edges live in slices and
// refer to each other by index, so there are no pointer cycles between them.

type NodeID int
type EdgeID int
type DirEdgeID int

// NoDirEdge marks an unset link.
const NoDirEdge DirEdgeID = -1

const noRing = -1

type Node struct {
	Coord orb.Point
	// Outgoing directed edges, sorted counterclockwise from the positive x axis
	Star []DirEdgeID
}

func (n *Node) Degree() int {
	return len(n.Star)
}

// A DirectedEdge is one of the two orientations of an edge. The directed edge
// of edge e running along its points is 2e, and the reverse is 2e+1.
type DirectedEdge struct {
	Edge    EdgeID
	Forward bool
	// The node the directed edge leaves from
	Origin NodeID
	// Origin coordinate, and the next point along the direction
	P0, P1   orb.Point
	quadrant int

	Label    Label
	InResult bool
	Visited  bool

	Next    DirEdgeID
	NextMin DirEdgeID

	edgeRing    int
	minEdgeRing int
}

func (de *DirectedEdge) String() string {
	dir := "→"
	if !de.Forward {
		dir = "←"
	}
	return fmt.Sprintf("%s%s (%g %g) %s", dbg.EdgeName(de.Edge), dir, de.P0[0], de.P0[1], de.Label)
}

// Sym gives the directed edge of the same edge running the other way.
func Sym(d DirEdgeID) DirEdgeID {
	return d ^ 1
}

type PlanarGraph struct {
	Nodes    []Node
	Edges    []*Edge
	DirEdges []DirectedEdge
	Rings    []*EdgeRing

	nodeAt map[orb.Point]NodeID
}

func NewPlanarGraph() *PlanarGraph {
	return &PlanarGraph{nodeAt: make(map[orb.Point]NodeID)}
}

func (g *PlanarGraph) Node(id NodeID) *Node {
	return &g.Nodes[id]
}

func (g *PlanarGraph) DirEdge(id DirEdgeID) *DirectedEdge {
	return &g.DirEdges[id]
}

// AddNode returns the node at p, creating it if needed.
func (g *PlanarGraph) AddNode(p orb.Point) NodeID {
	if id, ok := g.nodeAt[p]; ok {
		return id
	}
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{Coord: p})
	g.nodeAt[p] = id
	return id
}

func (g *PlanarGraph) FindNode(p orb.Point) (NodeID, bool) {
	id, ok := g.nodeAt[p]
	return id, ok
}

// AddEdges adds each edge with its two directed edges, and files the directed
// edges into their origin nodes' stars.
func (g *PlanarGraph) AddEdges(edges []*Edge) {
	for _, e := range edges {
		n := len(e.Points)
		if n < 2 {
			internal.Fatalf("edge needs at least two points, got %d", n)
		}
		id := EdgeID(len(g.Edges))
		g.Edges = append(g.Edges, e)

		g.addDirEdge(id, true, e.Points[0], e.Points[1], e.Label)
		g.addDirEdge(id, false, e.Points[n-1], e.Points[n-2], e.Label.Flipped())
	}
}

func (g *PlanarGraph) addDirEdge(e EdgeID, forward bool, p0, p1 orb.Point, label Label) {
	origin := g.AddNode(p0)
	d := DirEdgeID(len(g.DirEdges))
	g.DirEdges = append(g.DirEdges, DirectedEdge{
		Edge:        e,
		Forward:     forward,
		Origin:      origin,
		P0:          p0,
		P1:          p1,
		quadrant:    algorithm.QuadrantOf(p0, p1),
		Label:       label,
		Next:        NoDirEdge,
		NextMin:     NoDirEdge,
		edgeRing:    noRing,
		minEdgeRing: noRing,
	})
	g.insertIntoStar(origin, d)
}

// Stars stay sorted by angle. Directed edges pointing the same way keep their
// insertion order.
func (g *PlanarGraph) insertIntoStar(n NodeID, d DirEdgeID) {
	node := g.Node(n)
	de := g.DirEdge(d)
	i := sort.Search(len(node.Star), func(i int) bool {
		other := g.DirEdge(node.Star[i])
		return algorithm.CompareDirection(de.P0, other.P1, de.P1) > 0
	})
	node.Star = append(node.Star, 0)
	copy(node.Star[i+1:], node.Star[i:])
	node.Star[i] = d
}

// FindEdge finds an edge whose first two points are p0 and p1.
func (g *PlanarGraph) FindEdge(p0, p1 orb.Point) (EdgeID, bool) {
	for i, e := range g.Edges {
		if e.Points[0] == p0 && e.Points[1] == p1 {
			return EdgeID(i), true
		}
	}
	return 0, false
}

// FindEdgeInSameDirection finds an edge starting or ending at p0 which leaves
// p0 heading the same way as p1 does.
func (g *PlanarGraph) FindEdgeInSameDirection(p0, p1 orb.Point) (EdgeID, bool) {
	for i, e := range g.Edges {
		n := len(e.Points)
		if matchInSameDirection(p0, p1, e.Points[0], e.Points[1]) {
			return EdgeID(i), true
		}
		if matchInSameDirection(p0, p1, e.Points[n-1], e.Points[n-2]) {
			return EdgeID(i), true
		}
	}
	return 0, false
}

func matchInSameDirection(p0, p1, ep0, ep1 orb.Point) bool {
	if p0 != ep0 {
		return false
	}
	return algorithm.Orientation(p0, p1, ep1) == algorithm.Collinear &&
		algorithm.QuadrantOf(p0, p1) == algorithm.QuadrantOf(ep0, ep1)
}

// FindEdgeEnd gives the directed edge running along e's points.
func (g *PlanarGraph) FindEdgeEnd(e EdgeID) DirEdgeID {
	return DirEdgeID(2 * e)
}

// LinkResultDirectedEdges sets Next on every result directed edge, at every
// node.
func (g *PlanarGraph) LinkResultDirectedEdges() {
	for i := range g.Nodes {
		g.linkResultDirectedEdges(NodeID(i))
	}
}

// resultAreaEdges are the star's directed edges that are in the result in
// either direction.
func (g *PlanarGraph) resultAreaEdges(n NodeID) []DirEdgeID {
	var result []DirEdgeID
	for _, d := range g.Node(n).Star {
		if g.DirEdge(d).InResult || g.DirEdge(Sym(d)).InResult {
			result = append(result, d)
		}
	}
	return result
}

// Going counterclockwise around the node, each incoming result edge is linked
// to the next outgoing one.
func (g *PlanarGraph) linkResultDirectedEdges(n NodeID) {
	const (
		scanningForIncoming = iota
		linkingToOutgoing
	)

	firstOut := NoDirEdge
	incoming := NoDirEdge
	state := scanningForIncoming
	for _, nextOut := range g.resultAreaEdges(n) {
		nextIn := Sym(nextOut)
		outDE := g.DirEdge(nextOut)
		if !outDE.Label.IsArea(0) {
			continue
		}
		if firstOut == NoDirEdge && outDE.InResult {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if !g.DirEdge(nextIn).InResult {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if !outDE.InResult {
				continue
			}
			g.DirEdge(incoming).Next = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == NoDirEdge {
			internal.FatalAtf(g.Node(n).Coord, "no outgoing directed edge found")
		}
		g.DirEdge(incoming).Next = firstOut
	}
}

// Same as linkResultDirectedEdges, but clockwise, and restricted to the
// directed edges of one maximal ring.
func (g *PlanarGraph) linkMinimalDirectedEdges(n NodeID, ring int) {
	const (
		scanningForIncoming = iota
		linkingToOutgoing
	)

	edges := g.resultAreaEdges(n)
	firstOut := NoDirEdge
	incoming := NoDirEdge
	state := scanningForIncoming
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := Sym(nextOut)
		if firstOut == NoDirEdge && g.DirEdge(nextOut).edgeRing == ring {
			firstOut = nextOut
		}
		switch state {
		case scanningForIncoming:
			if g.DirEdge(nextIn).edgeRing != ring {
				continue
			}
			incoming = nextIn
			state = linkingToOutgoing
		case linkingToOutgoing:
			if g.DirEdge(nextOut).edgeRing != ring {
				continue
			}
			g.DirEdge(incoming).NextMin = nextOut
			state = scanningForIncoming
		}
	}
	if state == linkingToOutgoing {
		if firstOut == NoDirEdge {
			internal.FatalAtf(g.Node(n).Coord, "found no first outgoing directed edge")
		}
		g.DirEdge(incoming).NextMin = firstOut
	}
}

// ComputeSplitEdges splits every edge at its recorded intersections.
func ComputeSplitEdges(edges []*Edge, f algorithm.Factory) []*Edge {
	var result []*Edge
	for _, e := range edges {
		result = append(result, e.Intersections.SplitEdges(f)...)
	}
	return result
}

func (g *PlanarGraph) String() string {
	s := fmt.Sprintf("planar graph: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	for i, n := range g.Nodes {
		s += fmt.Sprintf("  %s (%g %g) degree %d\n", dbg.NodeName(NodeID(i)), n.Coord[0], n.Coord[1], n.Degree())
		for _, d := range n.Star {
			s += "    " + g.DirEdge(d).String() + "\n"
		}
	}
	return s
}
