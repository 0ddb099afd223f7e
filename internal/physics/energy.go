package physics

import "math"

// EnergyResult is the mechanical energy of a body of mass m at height h
// moving with speed v. Total is always PE + KE.
type EnergyResult struct {
	PE       float64
	KE       float64
	Total    float64
	Velocity float64
}

// FreeFallState is the height and downward speed of a body dropped from rest.
type FreeFallState struct {
	Height   float64
	Velocity float64
}

func Energy(mass, height, velocity float64) EnergyResult {
	pe := mass * G * height
	ke := 0.5 * mass * velocity * velocity
	return EnergyResult{
		PE:       pe,
		KE:       ke,
		Total:    pe + ke,
		Velocity: velocity,
	}
}

// ImpactTime is the time a body dropped from h0 takes to reach the ground.
func ImpactTime(h0 float64) float64 {
	if h0 <= 0 {
		return 0
	}
	return math.Sqrt(2 * h0 / G)
}

// ImpactSpeed is sqrt(2·g·h0), or 0 for a body already on the ground.
func ImpactSpeed(h0 float64) float64 {
	if h0 <= 0 {
		return 0
	}
	return math.Sqrt(2 * G * h0)
}

// FreeFall samples a drop from rest at h0 after t seconds. Once the body is
// on the ground the height stays at zero and the velocity is the impact speed,
// not g·t, which would keep growing past the moment of contact.
func FreeFall(h0, t float64) FreeFallState {
	if CheckFinite("free fall", h0, t) != nil {
		return FreeFallState{Height: math.NaN(), Velocity: math.NaN()}
	}

	// ground contact is decided on time, not on height == 0, so the sample
	// that first crosses the ground gets the impact speed
	if h0 <= 0 || t >= ImpactTime(h0) {
		return FreeFallState{Height: 0, Velocity: ImpactSpeed(h0)}
	}

	return FreeFallState{
		Height:   math.Max(0, h0-0.5*G*t*t),
		Velocity: G * t,
	}
}
