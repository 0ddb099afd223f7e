package scenario

import (
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
)

// Energy drops a body from rest and tracks how potential energy turns into
// kinetic energy.
type Energy struct {
	Mass   float64
	Height float64

	clock *clock.Driver
}

func NewEnergy(cfg config.EnergyConfig) *Energy {
	e := &Energy{Mass: cfg.Mass, Height: cfg.Height}
	e.clock = clock.NewDriver(e, clock.Options{})
	return e
}

func (e *Energy) Name() string  { return "energy" }
func (e *Energy) Title() string { return "Energy Conservation" }

func (e *Energy) Params() []Param {
	return []Param{
		{Name: "height", Label: "h0", Unit: "m", Min: 10, Max: 100, Step: 5},
		{Name: "mass", Label: "m", Unit: "kg", Min: 1, Max: 50, Step: 1},
	}
}

func (e *Energy) Get(name string) (float64, error) {
	switch name {
	case "mass":
		return e.Mass, nil
	case "height":
		return e.Height, nil
	}
	return 0, unknown(name)
}

// Set changes a parameter and always rewinds the drop, even a finished one.
func (e *Energy) Set(name string, value float64) error {
	if _, err := e.Get(name); err != nil {
		return err
	}
	if err := checkValue(name, value); err != nil {
		return err
	}
	switch name {
	case "mass":
		e.Mass = value
	case "height":
		e.Height = value
	}
	e.clock.Reset()
	return nil
}

func (e *Energy) Clock() *clock.Driver { return e.clock }

func (e *Energy) Reset() {
	e.clock.Reset()
}

// Settle finishes on the tick that reaches the ground. The time itself is
// kept; FreeFall pins the state at impact.
func (e *Energy) Settle(t float64) (float64, bool) {
	return t, t >= physics.ImpactTime(e.Height)
}

func (e *Energy) At(t float64) (physics.FreeFallState, physics.EnergyResult) {
	s := physics.FreeFall(e.Height, t)
	return s, physics.Energy(e.Mass, s.Height, s.Velocity)
}

func (e *Energy) State() (physics.FreeFallState, physics.EnergyResult) {
	return e.At(e.clock.Elapsed())
}

func (e *Energy) Readout() []Reading {
	s, en := e.State()
	return []Reading{
		{Label: "t", Value: e.clock.Elapsed(), Unit: "s"},
		{Label: "height", Value: s.Height, Unit: "m"},
		{Label: "velocity", Value: s.Velocity, Unit: "m/s"},
		{Label: "PE", Value: en.PE, Unit: "J"},
		{Label: "KE", Value: en.KE, Unit: "J"},
		{Label: "total", Value: en.Total, Unit: "J"},
	}
}
