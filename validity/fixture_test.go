package validity

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/paulmach/orb"
)

// This file parses the svg fixtures into polygons. It is not a full (or even
// correct) svg parser. The first polygon element is the shell and any later
// ones are holes. If the svg has <g> groups, each group is one polygon of a
// multipolygon. If anything goes wrong, it bails.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) orb.Geometry {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	groups := rootEl.FindAll("g")
	if len(groups) == 0 {
		return polygonFromElements(name, rootEl.FindAll("polygon"))
	}
	var mp orb.MultiPolygon
	for _, group := range groups {
		mp = append(mp, polygonFromElements(name, group.FindAll("polygon")))
	}
	return mp
}

func polygonFromElements(name string, elements []*svgparser.Element) orb.Polygon {
	if len(elements) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}
	polygon := make(orb.Polygon, 0, len(elements))
	for _, el := range elements {
		polygon = append(polygon, parseRing(el.Attributes["points"]))
	}
	return polygon
}

// SVG polygons are implicitly closed, so the ring gets its first point again
// at the end.
func parseRing(pointString string) orb.Ring {
	var ring orb.Ring
	for _, pointString := range strings.Fields(pointString) {
		pointStrings := strings.Split(pointString, ",")
		if len(pointStrings) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(pointStrings[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", pointStrings[0], err)
		}
		y, err := strconv.ParseFloat(pointStrings[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", pointStrings[1], err)
		}
		ring = append(ring, orb.Point{x, y})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}
