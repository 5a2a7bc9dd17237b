package graph

import (
	"strings"

	"github.com/osuushi/planar/algorithm"
)

// Position is a side of an edge, or the edge itself.
type Position int

const (
	On Position = iota
	Left
	Right
)

func (p Position) Opposite() Position {
	switch p {
	case Left:
		return Right
	case Right:
		return Left
	}
	return p
}

// TopologyLocation holds where a component sits relative to one geometry.
// Lines only have an On location. Areas also have Left and Right.
type TopologyLocation struct {
	loc  [3]algorithm.Location
	area bool
}

func (t TopologyLocation) Get(pos Position) algorithm.Location {
	if pos != On && !t.area {
		return algorithm.None
	}
	return t.loc[pos]
}

// Set stores a location. Setting a side turns a line location into an area
// location.
func (t *TopologyLocation) Set(pos Position, loc algorithm.Location) {
	if pos != On {
		t.area = true
	}
	t.loc[pos] = loc
}

func (t *TopologyLocation) SetAll(loc algorithm.Location) {
	for i := range t.loc {
		t.loc[i] = loc
	}
}

func (t *TopologyLocation) SetAllIfNull(loc algorithm.Location) {
	for i := range t.loc {
		if t.loc[i] == algorithm.None {
			t.loc[i] = loc
		}
	}
}

func (t TopologyLocation) IsArea() bool {
	return t.area
}

func (t TopologyLocation) IsNull() bool {
	for _, l := range t.loc {
		if l != algorithm.None {
			return false
		}
	}
	return true
}

func (t *TopologyLocation) Flip() {
	if t.area {
		t.loc[Left], t.loc[Right] = t.loc[Right], t.loc[Left]
	}
}

// Merge fills in the locations t doesn't know from other.
func (t *TopologyLocation) Merge(other TopologyLocation) {
	if other.area {
		t.area = true
	}
	for i := range t.loc {
		if t.loc[i] == algorithm.None {
			t.loc[i] = other.loc[i]
		}
	}
}

func (t TopologyLocation) String() string {
	if !t.area {
		return t.loc[On].String()
	}
	return t.loc[Left].String() + t.loc[On].String() + t.loc[Right].String()
}

// A Label records the topological relationship of an edge or node to up to two
// input geometries, addressed by geometry index 0 or 1.
type Label struct {
	elt [2]TopologyLocation
}

func LineLabel(geomIndex int, on algorithm.Location) Label {
	var l Label
	l.elt[geomIndex].loc[On] = on
	return l
}

func AreaLabel(geomIndex int, on, left, right algorithm.Location) Label {
	var l Label
	l.elt[geomIndex] = TopologyLocation{
		loc:  [3]algorithm.Location{On: on, Left: left, Right: right},
		area: true,
	}
	return l
}

func (l Label) Location(geomIndex int, pos Position) algorithm.Location {
	return l.elt[geomIndex].Get(pos)
}

func (l Label) Topology(geomIndex int) TopologyLocation {
	return l.elt[geomIndex]
}

func (l *Label) SetLocation(geomIndex int, pos Position, loc algorithm.Location) {
	l.elt[geomIndex].Set(pos, loc)
}

func (l *Label) SetAllLocations(geomIndex int, loc algorithm.Location) {
	l.elt[geomIndex].SetAll(loc)
}

func (l *Label) SetAllLocationsIfNull(geomIndex int, loc algorithm.Location) {
	l.elt[geomIndex].SetAllIfNull(loc)
}

func (l Label) IsArea(geomIndex int) bool {
	return l.elt[geomIndex].IsArea()
}

func (l Label) IsNull(geomIndex int) bool {
	return l.elt[geomIndex].IsNull()
}

// Flip swaps Left and Right for both geometries.
func (l *Label) Flip() {
	l.elt[0].Flip()
	l.elt[1].Flip()
}

// Flipped returns a copy of l with its sides swapped.
func (l Label) Flipped() Label {
	l.Flip()
	return l
}

func (l *Label) Merge(other Label) {
	l.elt[0].Merge(other.elt[0])
	l.elt[1].Merge(other.elt[1])
}

func (l Label) String() string {
	var sb strings.Builder
	sb.WriteString("A:")
	sb.WriteString(l.elt[0].String())
	sb.WriteString(" B:")
	sb.WriteString(l.elt[1].String())
	return sb.String()
}
