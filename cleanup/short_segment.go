package cleanup

import (
	"context"
	"math"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/feature"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ShortSegmentVisitor finds consecutive vertices closer than
// MinSegmentLength. A short segment that barely turns the line, and turns it
// less than the vertices either side of it, is reported as fixable; any other
// is reported for review. The line itself is never changed.
type ShortSegmentVisitor struct{}

func (ShortSegmentVisitor) Name() string { return "short segment" }

func (ShortSegmentVisitor) Visit(ctx context.Context, c *Cleaner) error {
	if c.Config.MinSegmentLength <= 0 {
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
		c.checkShortSegments(e)
	}
	return nil
}

func (c *Cleaner) checkShortSegments(e *feature.Edge) {
	pts := e.Line
	for i := 0; i+1 < len(pts); i++ {
		length := planar.Distance(pts[i], pts[i+1])
		if length >= c.Config.MinSegmentLength {
			continue
		}
		mid := orb.Point{(pts[i][0] + pts[i+1][0]) / 2, (pts[i][1] + pts[i+1][1]) / 2}
		short := math.Min(vertexAngle(pts, i), vertexAngle(pts, i+1))
		before, after := vertexAngle(pts, i-1), vertexAngle(pts, i+2)
		edges := []feature.EdgeID{e.ID}
		if short > c.Config.StraightAngle && short > before && short > after {
			c.Stats.Fixable++
			c.emit(ShortSegmentFixable, mid, edges,
				"segment %d of edge %d is %.3g long and nearly straight (%.1f°)", i, e.ID, length, short)
			continue
		}
		c.review(ShortSegmentReview, mid, edges,
			"segment %d of edge %d is %.3g long and turns the line (%.1f°)", i, e.ID, length, short)
	}
}

// vertexAngle is the interior angle at pts[i], 180 for a straight line. The
// ends of a line, and indices past them, count as 0.
func vertexAngle(pts []orb.Point, i int) float64 {
	if i <= 0 || i >= len(pts)-1 {
		return 0
	}
	return algorithm.InteriorAngle(pts[i-1], pts[i], pts[i+1])
}
