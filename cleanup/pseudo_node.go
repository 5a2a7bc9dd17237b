package cleanup

import (
	"context"

	"github.com/osuushi/planar/feature"
)

// Direction says how an edge runs compared with the next edge of its chain,
// past its far end from the pseudo node being removed.
type Direction int

const (
	Forwards Direction = iota
	Backwards
	// The far end is a dead end.
	TerminatesAtEnd
	// The far end is a junction, or the chain changes feature there.
	TerminatesAtJunction
	// The chain comes back round to the pseudo node.
	Loop
)

func (d Direction) String() string {
	switch d {
	case Forwards:
		return "forwards"
	case Backwards:
		return "backwards"
	case TerminatesAtEnd:
		return "terminates at end"
	case TerminatesAtJunction:
		return "terminates at junction"
	case Loop:
		return "loop"
	}
	return "unknown"
}

// PseudoNodeVisitor merges the two edges at each node of degree 2 when they
// carry the same feature. Edges that run into each other head to head or
// tail to tail are straightened out first, by reversing whichever side
// disagrees with the rest of its chain.
type PseudoNodeVisitor struct{}

func (PseudoNodeVisitor) Name() string { return "pseudo node" }

func (PseudoNodeVisitor) Visit(ctx context.Context, c *Cleaner) error {
	for _, id := range c.Graph.NodeIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.removePseudoNode(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cleaner) pseudoNodePair(id feature.NodeID) (a, b *feature.Edge, ok bool) {
	n, ok := c.Graph.Node(id)
	if !ok || n.Degree() != 2 || n.Edges[0] == n.Edges[1] {
		return nil, nil, false
	}
	a, _ = c.Graph.Edge(n.Edges[0])
	b, _ = c.Graph.Edge(n.Edges[1])
	if !c.inScope(a) || !c.inScope(b) || a.Feature.Type != b.Feature.Type {
		return nil, nil, false
	}
	if !a.Feature.AttributesEqual(b.Feature, c.Config.CompareAttributes) {
		return nil, nil, false
	}
	return a, b, true
}

func (c *Cleaner) removePseudoNode(id feature.NodeID) error {
	a, b, ok := c.pseudoNodePair(id)
	if !ok {
		return nil
	}
	n, _ := c.Graph.Node(id)

	if (a.To == id) != (b.To == id) {
		return c.mergePair(a, b)
	}

	flip, decided := c.chooseReversal(id, a, b)
	if !decided {
		short := a
		if b.Length() < a.Length() {
			short = b
		}
		if short.Length() >= c.Config.AutoFixLength {
			c.review(PseudoNodeConflict, n.Point, []feature.EdgeID{a.ID, b.ID},
				"edges %d and %d run against each other and their chains don't say which to reverse", a.ID, b.ID)
			return nil
		}
		flip = short
	}
	c.log.Debug("reversing edge", "edge", flip.String(), "node", n.String())
	if err := c.Graph.ReverseEdge(flip.ID); err != nil {
		return err
	}
	c.Stats.Reversed++
	return c.mergePair(a, b)
}

// chooseReversal picks the edge to reverse when a and b meet head to head or
// tail to tail at n. An edge that agrees with its own neighbour stays as it
// is; failing that, one that disagrees with its neighbour is flipped.
func (c *Cleaner) chooseReversal(n feature.NodeID, a, b *feature.Edge) (*feature.Edge, bool) {
	da := c.direction(a, n, b)
	db := c.direction(b, n, a)
	c.log.Debug("pseudo node directions", "a", da.String(), "b", db.String())
	switch {
	case da == Forwards && db != Forwards:
		return b, true
	case db == Forwards && da != Forwards:
		return a, true
	case da == Backwards && terminates(db):
		return a, true
	case db == Backwards && terminates(da):
		return b, true
	}
	return nil, false
}

func terminates(d Direction) bool {
	return d == TerminatesAtEnd || d == TerminatesAtJunction
}

// direction classifies e against the next edge of the chain beyond its far
// end from n. partner is the edge on the other side of n.
func (c *Cleaner) direction(e *feature.Edge, n feature.NodeID, partner *feature.Edge) Direction {
	far := e.Other(n)
	if far == n {
		return Loop
	}
	node, _ := c.Graph.Node(far)
	switch node.Degree() {
	case 1:
		return TerminatesAtEnd
	case 2:
	default:
		return TerminatesAtJunction
	}
	nextID := node.Edges[0]
	if nextID == e.ID {
		nextID = node.Edges[1]
	}
	if nextID == partner.ID {
		return Loop
	}
	next, _ := c.Graph.Edge(nextID)
	if !c.inScope(next) || next.Feature.Type != e.Feature.Type {
		return TerminatesAtJunction
	}
	if (e.To == far) == (next.From == far) {
		return Forwards
	}
	return Backwards
}

// mergePair joins two edges that already run the same way, keeping the
// longer one's feature.
func (c *Cleaner) mergePair(a, b *feature.Edge) error {
	keep, other := a, b
	if b.Length() > a.Length() {
		keep, other = b, a
	}
	desc := keep.String()
	merged, err := c.Graph.MergeEdges(keep.ID, other.ID)
	if err != nil {
		return err
	}
	c.Stats.Merged++
	c.log.Debug("merged edges", "keep", desc, "other", other.ID, "into", merged)
	return nil
}
