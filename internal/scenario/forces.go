package scenario

import (
	"github.com/san-kum/mechlab/internal/challenge"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
)

// Forces pulls a block across a rough floor. Time only moves while the
// block accelerates forward, and there is no end to the run.
type Forces struct {
	Mass      float64
	Force     float64
	Angle     float64
	MuStatic  float64
	MuKinetic float64

	clock *clock.Driver
}

func NewForces(cfg config.ForcesConfig) *Forces {
	f := &Forces{
		Mass:      cfg.Mass,
		Force:     cfg.Force,
		Angle:     cfg.Angle,
		MuStatic:  cfg.MuStatic,
		MuKinetic: cfg.MuKinetic,
	}
	f.clock = clock.NewDriver(f, clock.Options{Scale: cfg.TimeScale})
	return f
}

func (f *Forces) Name() string  { return "forces" }
func (f *Forces) Title() string { return "Dynamics and Friction" }

func (f *Forces) Params() []Param {
	return []Param{
		{Name: "mass", Label: "m", Unit: "kg", Min: 1, Max: 100, Step: 1},
		{Name: "force", Label: "F", Unit: "N", Min: 0, Max: 500, Step: 5},
		{Name: "angle", Label: "θ", Unit: "°", Min: -90, Max: 90, Step: 5},
		{Name: "mu_static", Label: "μs", Min: 0, Max: 1, Step: 0.05},
		{Name: "mu_kinetic", Label: "μk", Min: 0, Max: 1, Step: 0.05},
		{Name: "time_scale", Label: "speed", Unit: "x", Min: config.MinTimeScale, Max: config.MaxTimeScale, Step: 0.1},
	}
}

func (f *Forces) Get(name string) (float64, error) {
	switch name {
	case "mass":
		return f.Mass, nil
	case "force":
		return f.Force, nil
	case "angle":
		return f.Angle, nil
	case "mu_static":
		return f.MuStatic, nil
	case "mu_kinetic":
		return f.MuKinetic, nil
	case "time_scale":
		return f.clock.Scale(), nil
	}
	return 0, unknown(name)
}

// Set changes a parameter without touching the clock. time_scale is clamped
// to [MinTimeScale, MaxTimeScale].
func (f *Forces) Set(name string, value float64) error {
	if _, err := f.Get(name); err != nil {
		return err
	}
	if err := checkValue(name, value); err != nil {
		return err
	}
	switch name {
	case "mass":
		f.Mass = value
	case "force":
		f.Force = value
	case "angle":
		f.Angle = value
	case "mu_static":
		f.MuStatic = value
	case "mu_kinetic":
		f.MuKinetic = value
	case "time_scale":
		f.clock.SetScale(Param{Min: config.MinTimeScale, Max: config.MaxTimeScale}.Clamp(value))
	}
	return nil
}

func (f *Forces) Clock() *clock.Driver { return f.clock }

func (f *Forces) Reset() {
	f.clock.Reset()
}

func (f *Forces) Result() physics.DynamicsResult {
	return physics.Dynamics(f.Mass, f.Force, f.Angle, f.MuStatic, f.MuKinetic)
}

// Holding freezes time unless the block accelerates in the +x direction.
func (f *Forces) Holding() bool {
	return !(f.Result().Acceleration > 0)
}

func (f *Forces) Settle(t float64) (float64, bool) {
	return t, false
}

// Displacement is the distance covered from rest after t seconds.
func (f *Forces) Displacement(t float64) float64 {
	return 0.5 * f.Result().Acceleration * t * t
}

// ApplyChallenge loads the parameters of c and rewinds the clock.
func (f *Forces) ApplyChallenge(c *challenge.Challenge) {
	f.Mass = c.Mass
	f.Force = c.Force
	f.Angle = c.Angle
	f.MuStatic = c.MuStatic
	f.MuKinetic = c.MuKinetic
	f.clock.Reset()
}

func (f *Forces) Readout() []Reading {
	r := f.Result()
	t := f.clock.Elapsed()
	return []Reading{
		{Label: "t", Value: t, Unit: "s"},
		{Label: "weight", Value: physics.Weight(f.Mass), Unit: "N"},
		{Label: "normal", Value: r.Normal, Unit: "N"},
		{Label: "friction", Value: r.Friction, Unit: "N"},
		{Label: "net Fx", Value: r.NetForceX, Unit: "N"},
		{Label: "acceleration", Value: r.Acceleration, Unit: "m/s²"},
		{Label: "displacement", Value: f.Displacement(t), Unit: "m"},
	}
}
