// Package verify integrates the projectile and free-fall equations of motion
// numerically and measures how far each integrator strays from the
// closed-form answers the scenarios use.
package verify

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mechlab/internal/integrators"
	"github.com/san-kum/mechlab/internal/physics"
)

// Report is the worst deviation seen over one integrated run.
type Report struct {
	Case        string
	Integrator  string
	Dt          float64
	Steps       int
	MaxPosError float64
	MaxVelError float64
}

// Case describes the runs Compare performs.
type Case struct {
	V0     float64
	Angle  float64
	Height float64
	Dt     float64
}

func (c Case) validate() error {
	if err := physics.CheckFinite("case", c.V0, c.Angle, c.Height, c.Dt); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	return nil
}

// ballistic state is [x, y, vx, vy]
var ballistic = integrators.SystemFunc(func(x integrators.State, t float64) integrators.State {
	return integrators.State{x[2], x[3], 0, -physics.G}
})

// falling state is [h, v] with v positive upwards
var falling = integrators.SystemFunc(func(x integrators.State, t float64) integrators.State {
	return integrators.State{x[1], -physics.G}
})

// Projectile integrates one full flight and compares every step with
// physics.ProjectilePoint.
func Projectile(integ integrators.Integrator, v0, angleDeg, dt float64) Report {
	p0 := physics.ProjectilePoint(v0, angleDeg, 0)
	x := integrators.State{p0.X, p0.Y, p0.VX, p0.VY}
	end := math.Max(0, physics.FlightTime(v0, angleDeg))

	r := Report{Case: "projectile", Dt: dt}
	for t := 0.0; t+dt <= end+1e-12; t += dt {
		x = integ.Step(ballistic, x, t, dt)
		r.Steps++

		want := physics.ProjectilePoint(v0, angleDeg, t+dt)
		r.MaxPosError = math.Max(r.MaxPosError, math.Hypot(x[0]-want.X, x[1]-want.Y))
		r.MaxVelError = math.Max(r.MaxVelError, math.Hypot(x[2]-want.VX, x[3]-want.VY))
	}
	return r
}

// FreeFall integrates a drop from h0 up to the last step before impact and
// compares with physics.FreeFall.
func FreeFall(integ integrators.Integrator, h0, dt float64) Report {
	x := integrators.State{h0, 0}
	end := physics.ImpactTime(h0)

	r := Report{Case: "free_fall", Dt: dt}
	for t := 0.0; t+dt < end; t += dt {
		x = integ.Step(falling, x, t, dt)
		r.Steps++

		want := physics.FreeFall(h0, t+dt)
		r.MaxPosError = math.Max(r.MaxPosError, math.Abs(x[0]-want.Height))
		r.MaxVelError = math.Max(r.MaxVelError, math.Abs(-x[1]-want.Velocity))
	}
	return r
}

// Compare runs both cases for every named integrator concurrently. Reports
// are ordered by case and then integrator name.
func Compare(ctx context.Context, c Case, names []string) ([]Report, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	reports := make([]Report, 2*len(names))
	g, ctx := errgroup.WithContext(ctx)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			integ, err := integrators.Get(name)
			if err != nil {
				return err
			}
			p := Projectile(integ, c.V0, c.Angle, c.Dt)
			p.Integrator = name
			reports[2*i] = p

			f := FreeFall(integ, c.Height, c.Dt)
			f.Integrator = name
			reports[2*i+1] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(a, b int) bool {
		if reports[a].Case != reports[b].Case {
			return reports[a].Case > reports[b].Case
		}
		return reports[a].Integrator < reports[b].Integrator
	})
	return reports, nil
}
