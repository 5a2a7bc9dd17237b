package cleanup

import (
	"fmt"

	"github.com/osuushi/planar/feature"
	"github.com/paulmach/orb"
)

type EventKind int

const (
	// A pseudo node whose edges can't be put in one direction without
	// guessing
	PseudoNodeConflict EventKind = iota
	ShortSegmentFixable
	ShortSegmentReview
	// A node near an edge that can't be snapped to or split at unambiguously
	NearNodeReview
	EqualLineConflict
)

func (k EventKind) String() string {
	switch k {
	case PseudoNodeConflict:
		return "pseudo node conflict"
	case ShortSegmentFixable:
		return "short segment (fixable)"
	case ShortSegmentReview:
		return "short segment"
	case NearNodeReview:
		return "node near edge"
	case EqualLineConflict:
		return "equal line conflict"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// An Event is a spot that needs a person to look at it. Nothing in the graph
// was changed there.
type Event struct {
	Kind    EventKind
	Coord   orb.Point
	Edges   []feature.EdgeID
	Message string
}

func (e Event) String() string {
	return fmt.Sprintf("%s at (%g %g): %s", e.Kind, e.Coord[0], e.Coord[1], e.Message)
}

type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Collector keeps every event it's given.
type Collector struct {
	Events []Event
}

func (c *Collector) Report(e Event) {
	c.Events = append(c.Events, e)
}

// OfKind filters the collected events.
func (c *Collector) OfKind(kind EventKind) []Event {
	var result []Event
	for _, e := range c.Events {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}

type Stats struct {
	Merged   int
	Reversed int
	Split    int
	Snapped  int
	Removed  int
	Reviewed int
	Fixable  int
}

func (s Stats) String() string {
	return fmt.Sprintf("merged %d, reversed %d, split %d, snapped %d, removed %d, reviewed %d, fixable %d",
		s.Merged, s.Reversed, s.Split, s.Snapped, s.Removed, s.Reviewed, s.Fixable)
}
