package algorithm

import "github.com/paulmach/orb"

// A Factory materialises new lines and rings from coordinate sequences. The
// engine never hands out a slice it is still using; everything it builds goes
// through here so callers can impose their own precision or bookkeeping.
type Factory interface {
	LineString(pts []orb.Point) orb.LineString
	Ring(pts []orb.Point) orb.Ring
}

type DefaultFactory struct {
	Precision PrecisionModel
}

var _ Factory = DefaultFactory{}

func NewFactory(pm PrecisionModel) DefaultFactory {
	return DefaultFactory{Precision: pm}
}

func (f DefaultFactory) LineString(pts []orb.Point) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = f.Precision.MakePrecise(p)
	}
	return ls
}

// Ring closes the sequence if it isn't already closed.
func (f DefaultFactory) Ring(pts []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, f.Precision.MakePrecise(p))
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
