package graph

import (
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/planar/algorithm"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Padding around the drawing so nodes on the border are visible
const drawPadding = 20

// Draw renders the graph with its longer side at most size pixels. Directed
// edges in the result are drawn in green, other edges in grey, and nodes are
// coloured by degree.
func (g *PlanarGraph) Draw(size int) image.Image {
	var pts []orb.Point
	for _, e := range g.Edges {
		pts = append(pts, e.Points...)
	}
	for _, n := range g.Nodes {
		pts = append(pts, n.Coord)
	}
	bound := algorithm.PointsBound(pts)
	extent := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	scale := 1.0
	if extent > 0 {
		scale = float64(size-drawPadding*2) / extent
	}

	width := int(scale*(bound.Max[0]-bound.Min[0])) + drawPadding*2
	height := int(scale*(bound.Max[1]-bound.Min[1])) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bound.Min[0], -bound.Min[1])

	c.SetLineWidth(2 / scale)
	for i, e := range g.Edges {
		inResult := g.DirEdges[2*i].InResult || g.DirEdges[2*i+1].InResult
		if inResult {
			c.SetRGB(0, 1, 0.3)
		} else {
			c.SetRGB(0.6, 0.6, 0.6)
		}
		c.MoveTo(e.Points[0][0], e.Points[0][1])
		for _, p := range e.Points[1:] {
			c.LineTo(p[0], p[1])
		}
		c.Stroke()
	}

	radius := 4 / scale
	for _, n := range g.Nodes {
		switch n.Degree() {
		case 0:
			c.SetRGB(1, 1, 1)
		case 1:
			c.SetRGB(1, 0.3, 0.3)
		case 2:
			c.SetRGB(0, 1, 1)
		default:
			c.SetRGB(1, 1, 0)
		}
		c.DrawCircle(n.Coord[0], n.Coord[1], radius)
		c.Fill()
	}
	return c.Image()
}

// SavePNG draws the graph to a PNG file.
func (g *PlanarGraph) SavePNG(path string, size int) error {
	c := gg.NewContextForImage(g.Draw(size))
	return errors.Wrapf(c.SavePNG(path), "saving graph drawing to %s", path)
}

// Cat draws the graph straight to the terminal. Only iTerm understands the
// escape codes.
func (g *PlanarGraph) Cat(size int) error {
	path := filepath.Join(os.TempDir(), "planargraph.png")
	if err := g.SavePNG(path, size); err != nil {
		return err
	}
	return errors.Wrap(imgcat.CatFile(path, os.Stdout), "printing graph drawing")
}
