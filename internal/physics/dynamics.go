package physics

import "math"

// DynamicsResult describes a block of mass m pulled across a rough horizontal
// surface by a force tilted angle degrees above the horizontal.
//
// When Static is set the block does not move: Acceleration and NetForceX are
// zero and Friction equals the applied horizontal component exactly.
type DynamicsResult struct {
	Normal       float64
	Friction     float64
	Acceleration float64
	NetForceX    float64
	Static       bool
}

func Dynamics(mass, force, angleDeg, muStatic, muKinetic float64) DynamicsResult {
	rad := ToRadians(angleDeg)

	normal := math.Max(0, mass*G-force*math.Sin(rad))
	fx := force * math.Cos(rad)

	if math.Abs(fx) <= muStatic*normal {
		return DynamicsResult{
			Normal:   normal,
			Friction: fx,
			Static:   true,
		}
	}

	friction := muKinetic * normal * sign(fx)
	net := fx - friction

	// a massless block would accelerate without bound; report rest instead
	accel := 0.0
	if mass != 0 {
		accel = net / mass
	}

	return DynamicsResult{
		Normal:       normal,
		Friction:     friction,
		Acceleration: accel,
		NetForceX:    net,
	}
}

// Weight is m·g.
func Weight(mass float64) float64 {
	return mass * G
}
