// Package cleanup repairs topological defects in a feature graph: pseudo
// nodes, short segments, edges that run past a node without touching it, and
// duplicated lines. Whenever a fix would mean guessing, the spot is reported
// for review and the graph is left as it was there.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osuushi/planar/feature"
	"github.com/osuushi/planar/internal/logger"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// A Visitor is one pass over the graph. Each node or edge present when the
// pass starts is visited at most once.
type Visitor interface {
	Name() string
	Visit(ctx context.Context, c *Cleaner) error
}

// DefaultVisitors lists every pass in the order Run applies them. Duplicates
// go first so they can't turn into junctions, and pseudo nodes are merged
// after splitting and snapping have created them.
func DefaultVisitors() []Visitor {
	return []Visitor{
		EqualLineVisitor{},
		IntersectingNodeVisitor{},
		PseudoNodeVisitor{},
		ShortSegmentVisitor{},
	}
}

type Cleaner struct {
	Graph    *feature.Graph
	Config   Config
	Reporter Reporter
	Stats    Stats

	log *slog.Logger
}

// New makes a cleaner. A nil reporter discards events.
func New(g *feature.Graph, cfg Config, r Reporter) *Cleaner {
	if r == nil {
		r = ReporterFunc(func(Event) {})
	}
	return &Cleaner{
		Graph:    g,
		Config:   cfg,
		Reporter: r,
		log:      logger.Get(),
	}
}

// Run applies the passes in order, or DefaultVisitors if none are given.
// Cancellation is noticed between nodes and edges, never in the middle of an
// edit.
func (c *Cleaner) Run(ctx context.Context, visitors ...Visitor) error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if len(visitors) == 0 {
		visitors = DefaultVisitors()
	}
	for _, v := range visitors {
		before := c.Stats
		c.log = logger.Get().With("pass", v.Name())
		c.log.Debug("starting pass", "nodes", c.Graph.NumNodes(), "edges", c.Graph.NumEdges())
		if err := v.Visit(ctx, c); err != nil {
			return errors.Wrapf(err, "%s pass", v.Name())
		}
		if err := c.Graph.Verify(); err != nil {
			return errors.Wrapf(err, "graph inconsistent after %s pass", v.Name())
		}
		c.log.Info("finished pass", "changes", c.Stats.sub(before).String())
	}
	c.log = logger.Get()
	c.log.Info("cleanup finished", "stats", c.Stats.String())
	return nil
}

// Run cleans g with the default passes and returns what was done.
func Run(ctx context.Context, g *feature.Graph, cfg Config, r Reporter) (Stats, error) {
	c := New(g, cfg, r)
	err := c.Run(ctx)
	return c.Stats, err
}

func (c *Cleaner) inScope(e *feature.Edge) bool {
	return c.Config.includesType(e.Feature.Type)
}

func (c *Cleaner) review(kind EventKind, at orb.Point, edges []feature.EdgeID, format string, args ...interface{}) {
	c.Stats.Reviewed++
	c.emit(kind, at, edges, format, args...)
}

func (c *Cleaner) emit(kind EventKind, at orb.Point, edges []feature.EdgeID, format string, args ...interface{}) {
	e := Event{Kind: kind, Coord: at, Edges: edges, Message: fmt.Sprintf(format, args...)}
	c.log.Warn(e.Message, "kind", kind.String(), "x", at[0], "y", at[1], "edges", edges)
	c.Reporter.Report(e)
}

func (s Stats) sub(o Stats) Stats {
	return Stats{
		Merged:   s.Merged - o.Merged,
		Reversed: s.Reversed - o.Reversed,
		Split:    s.Split - o.Split,
		Snapped:  s.Snapped - o.Snapped,
		Removed:  s.Removed - o.Removed,
		Reviewed: s.Reviewed - o.Reviewed,
		Fixable:  s.Fixable - o.Fixable,
	}
}
