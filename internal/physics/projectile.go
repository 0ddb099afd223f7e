package physics

import "math"

// ProjectileAnswers holds the quantities asked of the learner for a launch at
// speed v0 and elevation angle, sampled at time t. TimeMax, MaxHeight and
// Range do not depend on t.
type ProjectileAnswers struct {
	PosY      float64
	VelY      float64
	TimeMax   float64
	MaxHeight float64
	Range     float64
}

// Point is the kinematic state of a projectile at time T.
type Point struct {
	T  float64
	X  float64
	Y  float64
	VX float64
	VY float64
}

func Projectile(v0, angleDeg, t float64) ProjectileAnswers {
	rad := ToRadians(angleDeg)
	vy0 := v0 * math.Sin(rad)
	vx0 := v0 * math.Cos(rad)

	timeMax := vy0 / G
	totalTime := 2 * timeMax

	return ProjectileAnswers{
		PosY:      vy0*t - 0.5*G*t*t,
		VelY:      vy0 - G*t,
		TimeMax:   timeMax,
		MaxHeight: vy0*timeMax - 0.5*G*timeMax*timeMax,
		Range:     vx0 * totalTime,
	}
}

// FlightTime is the time for a projectile launched from ground level to land
// again.
func FlightTime(v0, angleDeg float64) float64 {
	return 2 * v0 * math.Sin(ToRadians(angleDeg)) / G
}

func ProjectilePoint(v0, angleDeg, t float64) Point {
	rad := ToRadians(angleDeg)
	vx0 := v0 * math.Cos(rad)
	vy0 := v0 * math.Sin(rad)
	return Point{
		T:  t,
		X:  vx0 * t,
		Y:  vy0*t - 0.5*G*t*t,
		VX: vx0,
		VY: vy0 - G*t,
	}
}

// TrajectoryExtent returns the horizontal range and apex height of the full
// flight.
func TrajectoryExtent(v0, angleDeg float64) (rangeM, heightM float64) {
	rad := ToRadians(angleDeg)
	s := math.Sin(rad)
	rangeM = v0 * v0 * math.Sin(2*rad) / G
	heightM = v0 * v0 * s * s / (2 * G)
	return rangeM, heightM
}
