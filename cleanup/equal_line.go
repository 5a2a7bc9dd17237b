package cleanup

import (
	"context"

	"github.com/osuushi/planar/feature"
	"github.com/paulmach/orb"
)

// EqualLineVisitor drops an edge that repeats another of the same type,
// either way round, when their compared attributes match. If the attributes
// differ, both are kept and the pair is reported.
type EqualLineVisitor struct{}

func (EqualLineVisitor) Name() string { return "equal line" }

func (EqualLineVisitor) Visit(ctx context.Context, c *Cleaner) error {
	for _, id := range c.Graph.EdgeIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, ok := c.Graph.Edge(id)
		if !ok || !c.inScope(e) {
			continue
		}
		c.removeDuplicatesOf(e)
	}
	return nil
}

// removeDuplicatesOf only looks at edges with higher IDs, so each pair is
// seen once and the oldest edge survives.
func (c *Cleaner) removeDuplicatesOf(e *feature.Edge) {
	for _, id := range c.Graph.QueryEdges(e.Line.Bound()) {
		if id <= e.ID {
			continue
		}
		other, ok := c.Graph.Edge(id)
		if !ok || !c.inScope(other) || other.Feature.Type != e.Feature.Type {
			continue
		}
		if !sameLine(e.Line, other.Line) {
			continue
		}
		if !e.Feature.AttributesEqual(other.Feature, c.Config.CompareAttributes) {
			c.review(EqualLineConflict, e.Line[0], []feature.EdgeID{e.ID, other.ID},
				"edges %d and %d share a line but their attributes differ", e.ID, other.ID)
			continue
		}
		c.log.Debug("removing duplicate edge", "edge", other.String(), "duplicates", e.String())
		c.Graph.RemoveEdge(other.ID)
		c.Stats.Removed++
	}
}

func sameLine(a, b orb.LineString) bool {
	if len(a) != len(b) {
		return false
	}
	if a.Equal(b) {
		return true
	}
	for i := range a {
		if a[i] != b[len(b)-1-i] {
			return false
		}
	}
	return true
}
