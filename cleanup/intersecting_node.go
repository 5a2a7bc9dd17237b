package cleanup

import (
	"context"
	"sort"

	"github.com/osuushi/planar/feature"
	"github.com/paulmach/orb/planar"
)

// IntersectingNodeVisitor handles edges that pass within SnapTolerance of a
// node they don't end at. If one of the edge's own ends is that close to the
// node, the end is snapped onto it; otherwise the edge is split there.
type IntersectingNodeVisitor struct{}

func (IntersectingNodeVisitor) Name() string { return "intersecting node" }

func (IntersectingNodeVisitor) Visit(ctx context.Context, c *Cleaner) error {
	if c.Config.SnapTolerance <= 0 {
		return nil
	}
	for _, id := range c.Graph.EdgeIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, ok := c.Graph.Edge(id)
		if !ok || !c.inScope(e) {
			continue
		}
		if err := c.resolveNearNodes(e); err != nil {
			return err
		}
	}
	return nil
}

type nearNode struct {
	node     *feature.Node
	distance float64
}

func (c *Cleaner) resolveNearNodes(e *feature.Edge) error {
	candidates := c.dedupNearNodes(c.nearNodes(e))
	switch len(candidates) {
	case 0:
		return nil
	case 1:
	default:
		c.review(NearNodeReview, candidates[0].node.Point, []feature.EdgeID{e.ID},
			"%d separate nodes lie near edge %d", len(candidates), e.ID)
		return nil
	}

	n := candidates[0].node
	tol := c.Config.SnapTolerance
	for _, end := range []feature.NodeID{e.From, e.To} {
		endNode, _ := c.Graph.Node(end)
		if planar.Distance(endNode.Point, n.Point) > tol {
			continue
		}
		if c.countType(endNode, e.Feature.Type) != 1 || c.countType(n, e.Feature.Type) != 1 {
			c.review(NearNodeReview, n.Point, append([]feature.EdgeID{e.ID}, n.Edges...),
				"end of edge %d is near %s but more than one edge meets there", e.ID, n)
			return nil
		}
		return c.snapEnd(e, end == e.From, n)
	}

	c.log.Debug("splitting edge at nearby node", "edge", e.String(), "node", n.String())
	if _, _, err := c.Graph.SplitEdge(e.ID, n.Point); err != nil {
		return err
	}
	c.Stats.Split++
	return nil
}

func (c *Cleaner) snapEnd(e *feature.Edge, atStart bool, n *feature.Node) error {
	line := e.Line.Clone()
	if atStart {
		line[0] = n.Point
	} else {
		line[len(line)-1] = n.Point
	}
	c.log.Debug("snapping edge end", "edge", e.String(), "node", n.String())
	if err := c.Graph.ReplaceLine(e.ID, line); err != nil {
		return err
	}
	c.Stats.Snapped++
	return nil
}

// nearNodes finds the nodes within tolerance of e that e doesn't end at and
// that carry an edge of e's type, closest first.
func (c *Cleaner) nearNodes(e *feature.Edge) []nearNode {
	tol := c.Config.SnapTolerance
	var result []nearNode
	for _, id := range c.Graph.QueryNodes(e.Line.Bound().Pad(tol)) {
		if id == e.From || id == e.To {
			continue
		}
		n, _ := c.Graph.Node(id)
		if c.countType(n, e.Feature.Type) == 0 {
			continue
		}
		d := planar.DistanceFrom(e.Line, n.Point)
		if d > tol {
			continue
		}
		result = append(result, nearNode{n, d})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].distance < result[j].distance })
	return result
}

// dedupNearNodes drops candidates within DedupDistance of one closer to the
// edge.
func (c *Cleaner) dedupNearNodes(candidates []nearNode) []nearNode {
	var kept []nearNode
outer:
	for _, cand := range candidates {
		for _, k := range kept {
			if planar.Distance(k.node.Point, cand.node.Point) <= c.Config.DedupDistance {
				continue outer
			}
		}
		kept = append(kept, cand)
	}
	return kept
}

// countType counts the in-scope edges of the given type at n. A loop counts
// once per end.
func (c *Cleaner) countType(n *feature.Node, typ string) int {
	count := 0
	for _, id := range n.Edges {
		e, ok := c.Graph.Edge(id)
		if ok && c.inScope(e) && e.Feature.Type == typ {
			count++
		}
	}
	return count
}
