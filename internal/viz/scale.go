package viz

import "math"

// Display scaling guards. Degenerate inputs fall back to these so a scene
// never divides by zero or blows up to a single giant pixel.
const (
	MaxTrajectoryScale   = 10.0
	FallbackEnergy       = 100.0
	FallbackVectorExtent = 10.0

	vectorPadding = 1.2
)

// Viewport maps world coordinates (y up) onto canvas sub-pixels (y down).
type Viewport struct {
	OriginX, OriginY int
	Scale            float64
}

func (v Viewport) Project(x, y float64) (int, int) {
	return v.OriginX + round(x*v.Scale), v.OriginY - round(y*v.Scale)
}

// TrajectoryScale fits a flight of the given range and apex height into a
// w by h sub-pixel area. A zero extent counts as 1 m, and the result never
// exceeds MaxTrajectoryScale.
func TrajectoryScale(rangeM, heightM float64, w, h int) float64 {
	if !(rangeM > 0) {
		rangeM = 1
	}
	if !(heightM > 0) {
		heightM = 1
	}
	s := math.Min(float64(w)/rangeM, float64(h)/heightM)
	return math.Min(s, MaxTrajectoryScale)
}

// VectorScale fits vectors whose largest component is extent into a square
// of side min(w, h) centred on the origin, leaving a margin.
func VectorScale(extent float64, w, h int) float64 {
	span := extent * vectorPadding
	if !(span > 0) {
		span = FallbackVectorExtent
	}
	return float64(min(w, h)) / 2 / span
}

// EnergyFraction is value as a share of total, using FallbackEnergy when the
// total is not positive. The result is clamped to [0, 1].
func EnergyFraction(value, total float64) float64 {
	if !(total > 0) {
		total = FallbackEnergy
	}
	f := value / total
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// HeightScale maps heights up to h0 metres onto px sub-pixels.
func HeightScale(h0 float64, px int) float64 {
	if !(h0 > 0) {
		h0 = 1
	}
	return float64(px) / h0
}

func round(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	// keep off-canvas points off-canvas without overflowing int
	x = math.Max(-1e6, math.Min(1e6, x))
	return int(math.Round(x))
}
