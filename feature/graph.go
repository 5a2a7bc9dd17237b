// Package feature holds attributed linework as a graph of nodes and edges,
// with a quadtree over the nodes and an R-tree over the edges. Every edit
// updates the graph and both indices before it returns, so queries never see
// them disagree.
package feature

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal/dbg"
	"github.com/osuushi/planar/spatial"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

type NodeID int
type EdgeID int

// A Feature is what an edge represents. Edges split from one another share
// the pointer until one of them is edited.
type Feature struct {
	Type       string
	Attributes geojson.Properties
}

func (f *Feature) Clone() *Feature {
	return &Feature{Type: f.Type, Attributes: f.Attributes.Clone()}
}

// AttributesEqual compares the given attribute keys, or every attribute when
// keys is empty.
func (f *Feature) AttributesEqual(other *Feature, keys []string) bool {
	if len(keys) == 0 {
		if len(f.Attributes) != len(other.Attributes) {
			return false
		}
		for k, v := range f.Attributes {
			if w, ok := other.Attributes[k]; !ok || !reflect.DeepEqual(v, w) {
				return false
			}
		}
		return true
	}
	for _, k := range keys {
		v, okV := f.Attributes[k]
		w, okW := other.Attributes[k]
		if okV != okW || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

type Node struct {
	ID    NodeID
	Point orb.Point
	// A loop edge appears here twice, once per end.
	Edges []EdgeID
}

func (n *Node) Degree() int {
	return len(n.Edges)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (%g %g) degree %d", dbg.NodeName(n), n.Point[0], n.Point[1], n.Degree())
}

type Edge struct {
	ID       EdgeID
	Line     orb.LineString
	From, To NodeID
	Feature  *Feature
}

func (e *Edge) Length() float64 {
	return planar.Length(e.Line)
}

func (e *Edge) IsLoop() bool {
	return e.From == e.To
}

// Other gives the node at the far end of the edge from n.
func (e *Edge) Other(n NodeID) NodeID {
	if e.From == n {
		return e.To
	}
	return e.From
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s %s %d points", dbg.EdgeName(e), e.Feature.Type, len(e.Line))
}

type Graph struct {
	nodes  map[NodeID]*Node
	edges  map[EdgeID]*Edge
	nodeAt map[orb.Point]NodeID

	nextNode NodeID
	nextEdge EdgeID

	nodeIndex *spatial.PointIndex
	edgeIndex *spatial.RTree
	factory   algorithm.Factory
}

func NewGraph(f algorithm.Factory) *Graph {
	if f == nil {
		f = algorithm.NewFactory(algorithm.Floating)
	}
	return &Graph{
		nodes:     make(map[NodeID]*Node),
		edges:     make(map[EdgeID]*Edge),
		nodeAt:    make(map[orb.Point]NodeID),
		nodeIndex: &spatial.PointIndex{},
		edgeIndex: &spatial.RTree{},
		factory:   f,
	}
}

func (g *Graph) Factory() algorithm.Factory {
	return g.factory
}

func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func (g *Graph) NodeAt(p orb.Point) (*Node, bool) {
	id, ok := g.nodeAt[p]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

func (g *Graph) NumNodes() int { return len(g.nodes) }
func (g *Graph) NumEdges() int { return len(g.edges) }

// NodeIDs is a sorted snapshot, safe to iterate while editing.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeIDs is a sorted snapshot, safe to iterate while editing.
func (g *Graph) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *Graph) Degree(id NodeID) int {
	n, ok := g.nodes[id]
	if !ok {
		return 0
	}
	return n.Degree()
}

// AddEdge adds a line and nodes its two ends. Consecutive repeated points are
// dropped; what remains needs at least two points.
func (g *Graph) AddEdge(line orb.LineString, f *Feature) (EdgeID, error) {
	pts, err := g.materialize(line)
	if err != nil {
		return 0, err
	}
	return g.insert(pts, f), nil
}

// insert adds an edge for an already materialized line.
func (g *Graph) insert(pts orb.LineString, f *Feature) EdgeID {
	if f == nil {
		f = &Feature{}
	}
	e := &Edge{
		ID:      g.nextEdge,
		Line:    pts,
		Feature: f,
	}
	g.nextEdge++
	g.attach(e)
	return e.ID
}

// materialize runs a line through the factory, then drops the repeated points
// that precision may have introduced.
func (g *Graph) materialize(line []orb.Point) (orb.LineString, error) {
	pts := algorithm.RemoveRepeatedPoints(g.factory.LineString(line))
	if len(pts) < 2 {
		return nil, errors.Errorf("edge needs at least two distinct points, got %d", len(pts))
	}
	return pts, nil
}

// attach files an edge under its end nodes and in the edge index.
func (g *Graph) attach(e *Edge) {
	e.From = g.addNode(e.Line[0])
	e.To = g.addNode(e.Line[len(e.Line)-1])
	g.nodes[e.From].Edges = append(g.nodes[e.From].Edges, e.ID)
	g.nodes[e.To].Edges = append(g.nodes[e.To].Edges, e.ID)
	g.edges[e.ID] = e
	g.edgeIndex.Insert(e.Line.Bound(), int(e.ID))
}

// detach undoes attach, pruning nodes left with no edges.
func (g *Graph) detach(e *Edge) {
	g.edgeIndex.Delete(e.Line.Bound(), int(e.ID))
	delete(g.edges, e.ID)
	g.unlink(e.From, e.ID)
	g.unlink(e.To, e.ID)
}

func (g *Graph) addNode(p orb.Point) NodeID {
	if id, ok := g.nodeAt[p]; ok {
		return id
	}
	n := &Node{ID: g.nextNode, Point: p}
	g.nextNode++
	g.nodes[n.ID] = n
	g.nodeAt[p] = n.ID
	g.nodeIndex.InsertPoint(p, int(n.ID))
	return n.ID
}

// unlink removes one occurrence of e from n's edges.
func (g *Graph) unlink(id NodeID, e EdgeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for i, other := range n.Edges {
		if other == e {
			n.Edges = append(n.Edges[:i], n.Edges[i+1:]...)
			break
		}
	}
	if len(n.Edges) == 0 {
		g.nodeIndex.RemovePoint(n.Point, int(n.ID))
		delete(g.nodeAt, n.Point)
		delete(g.nodes, id)
	}
}

// RemoveEdge deletes an edge. Nodes left without edges go with it.
func (g *Graph) RemoveEdge(id EdgeID) bool {
	e, ok := g.edges[id]
	if !ok {
		return false
	}
	g.detach(e)
	return true
}

// QueryNodes finds the nodes inside b.
func (g *Graph) QueryNodes(b orb.Bound) []NodeID {
	var result []NodeID
	for _, id := range g.nodeIndex.Query(b) {
		if n, ok := g.nodes[NodeID(id)]; ok && b.Contains(n.Point) {
			result = append(result, n.ID)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// NearestNodes finds up to k nodes within maxDistance of p, closest first.
func (g *Graph) NearestNodes(p orb.Point, k int, maxDistance float64) []NodeID {
	var result []NodeID
	for _, id := range g.nodeIndex.Nearest(p, k, maxDistance) {
		result = append(result, NodeID(id))
	}
	return result
}

// QueryEdges finds the edges whose bounds overlap b.
func (g *Graph) QueryEdges(b orb.Bound) []EdgeID {
	var result []EdgeID
	for _, id := range g.edgeIndex.Query(b) {
		if e, ok := g.edges[EdgeID(id)]; ok && e.Line.Bound().Intersects(b) {
			result = append(result, e.ID)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Extent bounds every edge in the graph.
func (g *Graph) Extent() (orb.Bound, bool) {
	return g.edgeIndex.Extent()
}

// Verify checks that the graph and both indices agree: every edge and node is
// found by a query over the whole extent and nothing else is, every edge is
// filed under its end nodes, and no node is left without edges.
func (g *Graph) Verify() error {
	if g.edgeIndex.Len() != len(g.edges) {
		return errors.Errorf("edge index holds %d records for %d edges", g.edgeIndex.Len(), len(g.edges))
	}
	if g.nodeIndex.Len() != len(g.nodes) {
		return errors.Errorf("node index holds %d records for %d nodes", g.nodeIndex.Len(), len(g.nodes))
	}
	extent, ok := g.Extent()
	if !ok {
		if len(g.edges) > 0 || len(g.nodes) > 0 {
			return errors.New("edge index is empty but the graph is not")
		}
		return nil
	}

	indexed := make(map[EdgeID]bool)
	for _, id := range g.edgeIndex.Query(extent) {
		indexed[EdgeID(id)] = true
	}
	for id, e := range g.edges {
		if !indexed[id] {
			return errors.Errorf("edge %d missing from edge index", id)
		}
		if !edgeInIndex(g.edgeIndex, e) {
			return errors.Errorf("edge %d is indexed under a stale bound", id)
		}
		for _, end := range []struct {
			node NodeID
			p    orb.Point
		}{{e.From, e.Line[0]}, {e.To, e.Line[len(e.Line)-1]}} {
			n, ok := g.nodes[end.node]
			if !ok {
				return errors.Errorf("edge %d refers to missing node %d", id, end.node)
			}
			if n.Point != end.p {
				return errors.Errorf("edge %d ends at (%g %g) but its node is at (%g %g)", id, end.p[0], end.p[1], n.Point[0], n.Point[1])
			}
		}
	}
	for id := range indexed {
		if _, ok := g.edges[id]; !ok {
			return errors.Errorf("edge index holds removed edge %d", id)
		}
	}

	nodesIndexed := make(map[NodeID]bool)
	for _, id := range g.nodeIndex.Query(extent) {
		nodesIndexed[NodeID(id)] = true
	}
	for id, n := range g.nodes {
		if !nodesIndexed[id] {
			return errors.Errorf("node %d missing from node index", id)
		}
		if n.Degree() == 0 {
			return errors.Errorf("node %d has no edges", id)
		}
		if g.nodeAt[n.Point] != id {
			return errors.Errorf("node %d is not registered at its point", id)
		}
		for _, e := range n.Edges {
			edge, ok := g.edges[e]
			if !ok || (edge.From != id && edge.To != id) {
				return errors.Errorf("node %d lists edge %d which does not end there", id, e)
			}
		}
	}
	for id := range nodesIndexed {
		if _, ok := g.nodes[id]; !ok {
			return errors.Errorf("node index holds removed node %d", id)
		}
	}
	return nil
}

func edgeInIndex(t *spatial.RTree, e *Edge) bool {
	found := false
	t.RangeSearch(e.Line.Bound(), func(id int) error {
		if EdgeID(id) == e.ID {
			found = true
			return spatial.Stop
		}
		return nil
	})
	return found
}
