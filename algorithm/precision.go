package algorithm

import (
	"math"

	"github.com/paulmach/orb"
)

// PrecisionModel snaps computed coordinates to a grid of 1/Scale. The zero
// value is full floating precision, which leaves coordinates untouched.
type PrecisionModel struct {
	Scale float64
}

var Floating = PrecisionModel{}

func Fixed(scale float64) PrecisionModel {
	return PrecisionModel{Scale: scale}
}

func (pm PrecisionModel) IsFloating() bool {
	return pm.Scale <= 0 || math.IsInf(pm.Scale, 0) || math.IsNaN(pm.Scale)
}

func (pm PrecisionModel) MakePreciseValue(v float64) float64 {
	if pm.IsFloating() || !isFinite(v) {
		return v
	}
	return math.Floor(v*pm.Scale+0.5) / pm.Scale
}

func (pm PrecisionModel) MakePrecise(p orb.Point) orb.Point {
	return orb.Point{pm.MakePreciseValue(p[0]), pm.MakePreciseValue(p[1])}
}
