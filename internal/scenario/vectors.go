package scenario

import (
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
)

// Vectors adds two planar vectors. It has no clock; everything is derived
// from A and B on read.
type Vectors struct {
	A             physics.Vector
	B             physics.Vector
	ShowResultant bool

	defaults config.VectorsConfig
}

func NewVectors(cfg config.VectorsConfig) *Vectors {
	v := &Vectors{defaults: cfg}
	v.Reset()
	return v
}

func (v *Vectors) Name() string  { return "vectors" }
func (v *Vectors) Title() string { return "Vector Addition" }

func (v *Vectors) Params() []Param {
	return []Param{
		{Name: "a_mag", Label: "|A|", Unit: "u", Min: 0, Max: 50, Step: 1},
		{Name: "a_angle", Label: "θA", Unit: "°", Min: -180, Max: 360, Step: 5},
		{Name: "b_mag", Label: "|B|", Unit: "u", Min: 0, Max: 50, Step: 1},
		{Name: "b_angle", Label: "θB", Unit: "°", Min: -180, Max: 360, Step: 5},
	}
}

func (v *Vectors) Get(name string) (float64, error) {
	switch name {
	case "a_mag":
		return v.A.Magnitude, nil
	case "a_angle":
		return v.A.Angle, nil
	case "b_mag":
		return v.B.Magnitude, nil
	case "b_angle":
		return v.B.Angle, nil
	}
	return 0, unknown(name)
}

func (v *Vectors) Set(name string, value float64) error {
	if _, err := v.Get(name); err != nil {
		return err
	}
	if err := checkValue(name, value); err != nil {
		return err
	}
	switch name {
	case "a_mag":
		v.A.Magnitude = value
	case "a_angle":
		v.A.Angle = value
	case "b_mag":
		v.B.Magnitude = value
	case "b_angle":
		v.B.Angle = value
	}
	return nil
}

func (v *Vectors) Clock() *clock.Driver { return nil }

// Reset restores the configured vectors, since there is no time to rewind.
func (v *Vectors) Reset() {
	v.A = v.defaults.A
	v.B = v.defaults.B
	v.ShowResultant = v.defaults.ShowResultant
}

func (v *Vectors) ToggleResultant() { v.ShowResultant = !v.ShowResultant }

func (v *Vectors) Resultant() physics.Resultant {
	return physics.Sum(v.A, v.B)
}

func (v *Vectors) Readout() []Reading {
	a := v.A.Components()
	b := v.B.Components()
	out := []Reading{
		{Label: "Ax", Value: a.X, Unit: "u"},
		{Label: "Ay", Value: a.Y, Unit: "u"},
		{Label: "Bx", Value: b.X, Unit: "u"},
		{Label: "By", Value: b.Y, Unit: "u"},
	}
	if v.ShowResultant {
		r := v.Resultant()
		out = append(out,
			Reading{Label: "Rx", Value: r.X, Unit: "u"},
			Reading{Label: "Ry", Value: r.Y, Unit: "u"},
			Reading{Label: "|R|", Value: r.Magnitude, Unit: "u"},
			Reading{Label: "θR", Value: r.Angle, Unit: "°"},
		)
	}
	return out
}
