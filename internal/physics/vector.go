package physics

import "math"

// Vector is a planar vector in polar form. Angle is in degrees,
// counter-clockwise from the +x axis.
type Vector struct {
	Magnitude float64 `yaml:"magnitude" mapstructure:"magnitude"`
	Angle     float64 `yaml:"angle" mapstructure:"angle"`
}

// Components is the cartesian form of a Vector.
type Components struct {
	X float64
	Y float64
}

// Resultant is the sum of two vectors in both cartesian and polar form.
// Angle lies in (-180, 180].
type Resultant struct {
	X         float64
	Y         float64
	Magnitude float64
	Angle     float64
}

func (v Vector) Components() Components {
	return VectorComponents(v.Magnitude, v.Angle)
}

func VectorComponents(magnitude, angleDeg float64) Components {
	rad := ToRadians(angleDeg)
	return Components{
		X: magnitude * math.Cos(rad),
		Y: magnitude * math.Sin(rad),
	}
}

// VectorResultant adds A and B componentwise.
func VectorResultant(magA, angA, magB, angB float64) Resultant {
	a := VectorComponents(magA, angA)
	b := VectorComponents(magB, angB)

	rx := a.X + b.X
	ry := a.Y + b.Y

	return Resultant{
		X:         rx,
		Y:         ry,
		Magnitude: math.Sqrt(rx*rx + ry*ry),
		Angle:     ToDegrees(math.Atan2(ry, rx)),
	}
}

// Sum is VectorResultant for two Vector values.
func Sum(a, b Vector) Resultant {
	return VectorResultant(a.Magnitude, a.Angle, b.Magnitude, b.Angle)
}
