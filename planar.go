// Planar topology for Go.
//
// This package nodes vector linework into a planar graph, checks areal
// geometry for validity, and traces the rings of noded polygons. The
// subpackages hold the pieces: algorithm, spatial, graph, validity, and the
// feature graph cleanup in feature and cleanup.
package planar

import (
	"log/slog"

	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/graph"
	"github.com/osuushi/planar/internal"
	"github.com/osuushi/planar/internal/logger"
	"github.com/osuushi/planar/validity"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// A TopologyError means a graph invariant broke while working on the input.
// It usually points to input far outside what the engine supports.
type TopologyError = internal.TopologyError

// SetLogger installs l for every package in the module. The default is
// silent; nil restores that.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Validate lists what is wrong with g, in the order the checks run. An empty
// list means g is valid. The error is only set if checking itself failed.
func Validate(g orb.Geometry, opts validity.Options) (result []*validity.Error, err error) {
	defer func() {
		recoveredErr := internal.HandleTopologyPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return validity.New(opts).Errors(g), nil
}

// IsValid stops at the first problem found.
func IsValid(g orb.Geometry, opts validity.Options) (valid bool, err error) {
	defer func() {
		recoveredErr := internal.HandleTopologyPanicRecover(recover())
		if recoveredErr != nil {
			valid = false
			err = recoveredErr
		}
	}()
	return validity.New(opts).IsValid(g), nil
}

// Node splits every line and ring of g wherever it crosses or touches
// another, or itself, and builds the planar graph of the pieces. Computed
// intersection points are rounded with pm.
func Node(g orb.Geometry, pm algorithm.PrecisionModel) (result *graph.PlanarGraph, err error) {
	defer func() {
		recoveredErr := internal.HandleTopologyPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return node(g, pm)
}

func node(g orb.Geometry, pm algorithm.PrecisionModel) (*graph.PlanarGraph, error) {
	gg := graph.NewGeometryGraph(0, g, algorithm.NewFactory(pm))
	if gg.TooFewPoints {
		return nil, errors.Errorf("too few points at (%g %g)", gg.InvalidPoint[0], gg.InvalidPoint[1])
	}
	gg.ComputeSelfNodes(algorithm.NewRobustLineIntersector(pm), true, false)
	return gg.Noded(), nil
}

// Rings nodes a polygonal geometry and traces the minimal rings around its
// interior. Shells come back clockwise and holes counterclockwise, as they
// run with the interior on their right. The geometry should be valid; a
// broken trace is returned as a TopologyError.
func Rings(g orb.Geometry, pm algorithm.PrecisionModel) (shells, holes []orb.Ring, err error) {
	defer func() {
		recoveredErr := internal.HandleTopologyPanicRecover(recover())
		if recoveredErr != nil {
			shells, holes = nil, nil
			err = recoveredErr
		}
	}()
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon, orb.Bound:
	default:
		return nil, nil, errors.Errorf("cannot trace rings of %T", g)
	}
	if b, ok := g.(orb.Bound); ok {
		g = b.ToPolygon()
	}

	pg, err := node(g, pm)
	if err != nil {
		return nil, nil, err
	}
	for i := range pg.DirEdges {
		de := &pg.DirEdges[i]
		de.InResult = de.Label.Location(0, graph.Right) == algorithm.Interior
	}
	pg.LinkResultDirectedEdges()

	f := algorithm.NewFactory(pm)
	for _, r := range pg.BuildEdgeRings() {
		if r.Hole {
			holes = append(holes, r.Ring(f))
		} else {
			shells = append(shells, r.Ring(f))
		}
	}
	return shells, holes, nil
}
