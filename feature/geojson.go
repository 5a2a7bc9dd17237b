package feature

import (
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/internal/logger"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// FromGeoJSON builds a graph from the line features of a collection. The
// feature type is read from the typeKey property. Features that aren't lines
// are skipped.
func FromGeoJSON(fc *geojson.FeatureCollection, typeKey string, f algorithm.Factory) (*Graph, error) {
	g := NewGraph(f)
	for i, gf := range fc.Features {
		var lines []orb.LineString
		switch geom := gf.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, geom)
		case orb.MultiLineString:
			lines = append(lines, geom...)
		case nil:
			logger.Get().Warn("skipping feature without geometry", "index", i)
			continue
		default:
			logger.Get().Warn("skipping non-line feature", "index", i, "type", geom.GeoJSONType())
			continue
		}

		typ, _ := gf.Properties[typeKey].(string)
		feat := &Feature{Type: typ, Attributes: gf.Properties.Clone()}
		for _, line := range lines {
			if _, err := g.AddEdge(line, feat); err != nil {
				return nil, errors.Wrapf(err, "feature %d", i)
			}
		}
	}
	return g, nil
}

// ToGeoJSON writes every edge out as a line feature, in edge ID order.
func (g *Graph) ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range g.EdgeIDs() {
		e := g.edges[id]
		gf := geojson.NewFeature(e.Line.Clone())
		gf.ID = int(id)
		if e.Feature.Attributes != nil {
			gf.Properties = e.Feature.Attributes.Clone()
		}
		fc.Append(gf)
	}
	return fc
}
