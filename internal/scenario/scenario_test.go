package scenario

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/challenge"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
)

func newRegistry() *Registry {
	return NewRegistry(config.DefaultConfig())
}

func TestRegistry(t *testing.T) {
	r := newRegistry()
	assert.Equal(t, []string{"vectors", "projectile", "forces", "energy"}, r.Names())

	for _, name := range r.Names() {
		s, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
		assert.NotEmpty(t, s.Title())
	}

	_, err := r.Get("orbit")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestSetRejectsBadInput(t *testing.T) {
	r := newRegistry()
	for _, name := range r.Names() {
		s, _ := r.Get(name)
		t.Run(name, func(t *testing.T) {
			err := s.Set("nope", 1)
			assert.ErrorIs(t, err, ErrUnknownParam)

			p := s.Params()[0]
			before, err := s.Get(p.Name)
			require.NoError(t, err)

			assert.ErrorIs(t, s.Set(p.Name, math.NaN()), physics.ErrNonFinite)
			assert.ErrorIs(t, s.Set(p.Name, math.Inf(-1)), physics.ErrNonFinite)

			after, _ := s.Get(p.Name)
			assert.Equal(t, before, after)
		})
	}
}

func TestResetMatchesFreshReadout(t *testing.T) {
	r := newRegistry()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			fresh, _ := r.Get(name)
			s, _ := r.Get(name)

			if d := s.Clock(); d != nil {
				tok, ok := d.Play()
				require.True(t, ok)
				for i := 0; i < 10; i++ {
					d.Tick(tok, 0.05)
				}
			}
			s.Reset()
			assert.Equal(t, fresh.Readout(), s.Readout())
		})
	}
}

func TestApplyPresets(t *testing.T) {
	r := newRegistry()
	for _, name := range r.Names() {
		for _, preset := range config.ListPresets(name) {
			s, _ := r.Get(name)
			values := config.GetPreset(name, preset)
			require.NoError(t, Apply(s, values), "%s/%s", name, preset)
			for k, v := range values {
				got, err := s.Get(k)
				require.NoError(t, err)
				assert.Equal(t, v, got, "%s/%s %s", name, preset, k)
			}
		}
	}
}

func TestApplyUnknownLeavesStateAlone(t *testing.T) {
	s := NewEnergy(config.DefaultConfig().Energy)
	err := Apply(s, map[string]float64{"mass": 3, "spin": 1})
	assert.True(t, errors.Is(err, ErrUnknownParam))
	assert.Equal(t, config.DefaultMass, s.Mass)
}

func TestAdjust(t *testing.T) {
	s := NewForces(config.DefaultConfig().Forces)

	require.NoError(t, Adjust(s, "force", 3))
	assert.Equal(t, 15.0, s.Force)

	require.NoError(t, Adjust(s, "mu_static", 20))
	assert.Equal(t, 1.0, s.MuStatic)

	require.NoError(t, Adjust(s, "time_scale", -100))
	got, _ := s.Get("time_scale")
	assert.InDelta(t, config.MinTimeScale, got, 1e-12)

	assert.ErrorIs(t, Adjust(s, "spin", 1), ErrUnknownParam)
}

func TestVectors(t *testing.T) {
	v := NewVectors(config.DefaultConfig().Vectors)
	r := v.Resultant()
	assert.InDelta(t, 10, r.X, 1e-9)
	assert.InDelta(t, 10, r.Y, 1e-9)
	assert.InDelta(t, 45, r.Angle, 1e-9)
	assert.Nil(t, v.Clock())
	assert.Len(t, v.Readout(), 8)

	v.ToggleResultant()
	assert.Len(t, v.Readout(), 4)

	require.NoError(t, v.Set("b_mag", 0))
	assert.InDelta(t, 10, v.Resultant().Magnitude, 1e-9)

	v.Reset()
	assert.Equal(t, 10.0, v.B.Magnitude)
	assert.True(t, v.ShowResultant)
}

func TestProjectileClock(t *testing.T) {
	p := NewProjectile(config.DefaultConfig().Projectile, config.DefaultConfig().Answers)
	d := p.Clock()
	tok, _ := d.Play()

	// raw frames are capped at 0.1s and replayed at half speed
	d.Tick(tok, 1.0)
	assert.InDelta(t, 0.05, d.Elapsed(), 1e-12)

	flight := physics.FlightTime(50, 45)
	for d.Tick(tok, 0.1) {
	}
	assert.Equal(t, clock.Finished, d.Status())
	assert.Equal(t, flight, d.Elapsed())

	pt := p.At(d.Elapsed())
	assert.InDelta(t, 0, pt.Y, 1e-9)
}

func TestProjectileParamChangeResettles(t *testing.T) {
	p := NewProjectile(config.DefaultConfig().Projectile, config.DefaultConfig().Answers)
	d := p.Clock()
	d.Seek(3)
	require.Equal(t, clock.Stopped, d.Status())

	require.NoError(t, p.Set("v0", 10))
	assert.Equal(t, clock.Finished, d.Status())
	assert.Equal(t, physics.FlightTime(10, 45), d.Elapsed())

	require.NoError(t, p.Set("v0", 50))
	assert.Equal(t, clock.Stopped, d.Status())
}

func TestProjectileFlatLaunchFinishesImmediately(t *testing.T) {
	p := NewProjectile(config.DefaultConfig().Projectile, config.DefaultConfig().Answers)
	require.NoError(t, p.Set("angle", 0))

	d := p.Clock()
	tok, _ := d.Play()
	assert.False(t, d.Tick(tok, 0.016))
	assert.Equal(t, 0.0, d.Elapsed())
}

func TestProjectileQuiz(t *testing.T) {
	p := NewProjectile(config.DefaultConfig().Projectile, config.DefaultConfig().Answers)
	require.NoError(t, Apply(p, config.GetPreset("projectile", "quiz")))

	exp := p.Expected()
	assert.InDelta(t, 8.684, exp[FieldPosY], 1e-3)
	assert.InDelta(t, -5.458, exp[FieldVelY], 1e-3)
	assert.InDelta(t, 1.443, exp[FieldTimeMax], 1e-3)

	require.NoError(t, p.Sheet.Set(FieldPosY, "8.7"))
	require.NoError(t, p.Sheet.Set(FieldVelY, "-5.5"))
	require.NoError(t, p.Sheet.Set(FieldTimeMax, "2"))
	assert.Equal(t, 2, p.Grade())
	assert.Equal(t, answer.Incorrect, p.Sheet.Verdicts()[FieldTimeMax])
}

func TestProjectileTrajectory(t *testing.T) {
	p := NewProjectile(config.DefaultConfig().Projectile, config.DefaultConfig().Answers)
	pts := p.Trajectory(20)
	require.Len(t, pts, 21)
	assert.Equal(t, 0.0, pts[0].Y)
	rng, _ := physics.TrajectoryExtent(p.V0, p.Angle)
	assert.InDelta(t, rng, pts[20].X, 1e-9)
}

func TestForcesHoldsWhileStatic(t *testing.T) {
	f := NewForces(config.DefaultConfig().Forces)
	d := f.Clock()
	tok, _ := d.Play()

	assert.True(t, d.Tick(tok, 0.5))
	assert.Equal(t, 0.0, d.Elapsed())
	assert.True(t, f.Result().Static)

	require.NoError(t, f.Set("force", 100))
	d.Tick(tok, 0.5)
	assert.Equal(t, 0.5, d.Elapsed())
	assert.Equal(t, clock.Running, d.Status())

	a := f.Result().Acceleration
	assert.InDelta(t, 0.5*a*0.25, f.Displacement(0.5), 1e-12)
}

func TestForcesHoldsOnBackwardAcceleration(t *testing.T) {
	f := NewForces(config.DefaultConfig().Forces)
	require.NoError(t, f.Set("force", 100))
	require.NoError(t, f.Set("angle", 180))
	assert.Less(t, f.Result().Acceleration, 0.0)
	assert.True(t, f.Holding())
}

func TestForcesTimeScale(t *testing.T) {
	f := NewForces(config.DefaultConfig().Forces)
	require.NoError(t, f.Set("force", 100))
	require.NoError(t, f.Set("time_scale", 2))

	d := f.Clock()
	tok, _ := d.Play()
	d.Tick(tok, 0.25)
	assert.Equal(t, 0.5, d.Elapsed())

	require.NoError(t, f.Set("time_scale", 50))
	got, _ := f.Get("time_scale")
	assert.Equal(t, config.MaxTimeScale, got)
}

func TestForcesApplyChallenge(t *testing.T) {
	f := NewForces(config.DefaultConfig().Forces)
	require.NoError(t, f.Set("force", 100))
	d := f.Clock()
	tok, _ := d.Play()
	d.Tick(tok, 1)

	c := challenge.NewGenerator(challenge.NewSeeded(3)).Next()
	f.ApplyChallenge(c)

	assert.Equal(t, c.Mass, f.Mass)
	assert.Equal(t, c.MuStatic, f.MuStatic)
	assert.Equal(t, clock.Stopped, d.Status())
	assert.Equal(t, 0.0, d.Elapsed())
	assert.False(t, d.Tick(tok, 1))
}

func TestEnergyFinishesAtGround(t *testing.T) {
	e := NewEnergy(config.DefaultConfig().Energy)
	d := e.Clock()
	tok, _ := d.Play()

	impact := physics.ImpactTime(e.Height)
	for d.Tick(tok, 0.1) {
	}
	assert.Equal(t, clock.Finished, d.Status())
	assert.GreaterOrEqual(t, d.Elapsed(), impact)
	assert.Less(t, d.Elapsed(), impact+0.1+1e-9)

	s, en := e.State()
	assert.Equal(t, 0.0, s.Height)
	assert.Equal(t, physics.ImpactSpeed(e.Height), s.Velocity)
	assert.InDelta(t, physics.Energy(e.Mass, e.Height, 0).Total, en.Total, 1e-9)
}

func TestEnergyParamChangeResets(t *testing.T) {
	e := NewEnergy(config.DefaultConfig().Energy)
	d := e.Clock()
	tok, _ := d.Play()
	d.Tick(tok, 10)
	require.Equal(t, clock.Finished, d.Status())

	require.NoError(t, e.Set("mass", 20))
	assert.Equal(t, clock.Stopped, d.Status())
	assert.Equal(t, 0.0, d.Elapsed())

	_, ok := d.Play()
	assert.True(t, ok)
}

func TestEnergyConservedAlongDrop(t *testing.T) {
	e := NewEnergy(config.DefaultConfig().Energy)
	want := physics.Energy(e.Mass, e.Height, 0).Total
	for tm := 0.0; tm < 5; tm += 0.1 {
		_, en := e.At(tm)
		assert.InDelta(t, want, en.Total, 1e-6)
		assert.Equal(t, en.PE+en.KE, en.Total)
	}
}

func TestReadingString(t *testing.T) {
	assert.Equal(t, "t: 1.50 s", Reading{Label: "t", Value: 1.5, Unit: "s"}.String())
	assert.Equal(t, "μ: 0.30", Reading{Label: "μ", Value: 0.3}.String())
}
