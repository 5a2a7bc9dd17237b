// Package validity checks area geometries for the structural problems that
// break noding and overlay: bad coordinates, open or degenerate rings,
// self-intersections, misplaced holes and shells, and split interiors.
//
// Checks run in a fixed order. A geometry that fails one of the early checks
// (coordinates, closure, point count, consistent area) gets no further checks,
// because the later ones assume a well formed graph.
package validity

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/graph"
	"github.com/osuushi/planar/internal"
	"github.com/osuushi/planar/internal/logger"
	"github.com/paulmach/orb"
)

type Options struct {
	// Stop at the first error instead of collecting them all.
	ShortCircuit bool
	// Accept a shell that touches itself at a vertex so as to enclose a hole.
	// OGC rules call this invalid, but some data models draw holes this way.
	SelfTouchingRingFormingHoleValid bool
	// Applied to points computed during noding.
	Precision algorithm.PrecisionModel
}

type Validator struct {
	Options
}

func New(opts Options) *Validator {
	return &Validator{Options: opts}
}

func IsValid(g orb.Geometry) bool {
	return FirstError(g) == nil
}

// FirstError returns the first error found, or nil for a valid geometry.
func FirstError(g orb.Geometry) *Error {
	return New(Options{ShortCircuit: true}).FirstError(g)
}

// Errors returns every error found.
func Errors(g orb.Geometry) []*Error {
	return New(Options{}).Errors(g)
}

func (v *Validator) IsValid(g orb.Geometry) bool {
	return v.FirstError(g) == nil
}

func (v *Validator) FirstError(g orb.Geometry) *Error {
	opts := v.Options
	opts.ShortCircuit = true
	errs := newChecker(opts).run(g)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Errors runs the checks, honouring ShortCircuit. Graph invariant failures
// panic with an internal.TopologyError; the root package converts those.
func (v *Validator) Errors(g orb.Geometry) []*Error {
	return newChecker(v.Options).run(g)
}

type checker struct {
	opts    Options
	factory algorithm.Factory
	li      algorithm.LineIntersector
	errs    []*Error
}

func newChecker(opts Options) *checker {
	return &checker{
		opts:    opts,
		factory: algorithm.NewFactory(opts.Precision),
		li:      algorithm.NewRobustLineIntersector(opts.Precision),
	}
}

func (c *checker) run(g orb.Geometry) []*Error {
	c.check(g)
	return c.errs
}

func (c *checker) report(kind Kind, at orb.Point, g orb.Geometry) {
	logger.Get().Debug("validity check failed", "kind", kind.String(), "x", at[0], "y", at[1])
	c.errs = append(c.errs, &Error{Kind: kind, Location: at, Geometry: g})
}

// done is true once the caller has everything it asked for.
func (c *checker) done() bool {
	return c.opts.ShortCircuit && len(c.errs) > 0
}

func (c *checker) check(g orb.Geometry) {
	switch g := g.(type) {
	case nil:
	case orb.Point:
		c.checkCoordinates(g, []orb.Point{g})
	case orb.MultiPoint:
		c.checkCoordinates(g, g)
	case orb.LineString:
		c.checkLineString(g)
	case orb.MultiLineString:
		for _, ls := range g {
			c.checkLineString(ls)
			if c.done() {
				return
			}
		}
	case orb.Ring:
		c.checkRing(g)
	case orb.Polygon:
		c.checkPolygonal(g, []orb.Polygon{g})
	case orb.MultiPolygon:
		c.checkPolygonal(g, g)
	case orb.Bound:
		c.checkPolygonal(g, []orb.Polygon{g.ToPolygon()})
	case orb.Collection:
		for _, member := range g {
			c.check(member)
			if c.done() {
				return
			}
		}
	default:
		internal.Fatalf("unsupported geometry type %T", g)
	}
}

func (c *checker) checkLineString(ls orb.LineString) {
	before := len(c.errs)
	c.checkCoordinates(ls, ls)
	if len(c.errs) > before {
		return
	}
	gg := graph.NewGeometryGraph(0, ls, c.factory)
	c.checkTooFewPoints(gg, ls)
}

func (c *checker) checkRing(r orb.Ring) {
	before := len(c.errs)
	c.checkCoordinates(r, r)
	if len(c.errs) > before {
		return
	}
	c.checkClosed(r)
	if len(c.errs) > before {
		return
	}
	gg := graph.NewGeometryGraph(0, r, c.factory)
	c.checkTooFewPoints(gg, r)
	if len(c.errs) > before {
		return
	}
	gg.ComputeSelfNodes(c.li, true, true)
	c.checkNoSelfIntersectingRings(gg)
}

func (c *checker) checkPolygonal(g orb.Geometry, polygons []orb.Polygon) {
	before := len(c.errs)
	for _, p := range polygons {
		for _, r := range p {
			c.checkCoordinates(r, r)
			if c.done() {
				return
			}
		}
	}
	if len(c.errs) > before {
		return
	}
	for _, p := range polygons {
		for _, r := range p {
			c.checkClosed(r)
			if c.done() {
				return
			}
		}
	}
	if len(c.errs) > before {
		return
	}

	gg := graph.NewGeometryGraph(0, g, c.factory)
	c.checkTooFewPoints(gg, g)
	if len(c.errs) > before {
		return
	}
	if !c.checkConsistentArea(gg, g) {
		return
	}

	if !c.opts.SelfTouchingRingFormingHoleValid {
		c.checkNoSelfIntersectingRings(gg)
		if c.done() {
			return
		}
	}

	for i, p := range polygons {
		c.checkHolesInShell(gg, i, p)
		if c.done() {
			return
		}
		c.checkHolesNotNested(gg, i, p)
		if c.done() {
			return
		}
	}
	if _, multi := g.(orb.MultiPolygon); multi {
		c.checkShellsNotNested(gg, polygons)
	}

	// Tracing the interior needs a graph free of the problems above
	if len(c.errs) > before {
		return
	}
	c.checkConnectedInterior(gg, polygons)
}
