package scenario

import (
	"math"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
)

// Answer sheet keys for the projectile quiz.
const (
	FieldPosY    = "pos_y"
	FieldVelY    = "vel_y"
	FieldTimeMax = "time_max"
)

// Projectile animates a launch from ground level and quizzes the learner on
// the state at a fixed instant.
type Projectile struct {
	V0    float64
	Angle float64

	QuizTime float64
	Sheet    *answer.Sheet

	clock    *clock.Driver
	defaults config.ProjectileConfig
}

func NewProjectile(cfg config.ProjectileConfig, answers config.AnswersConfig) *Projectile {
	p := &Projectile{
		V0:       cfg.V0,
		Angle:    cfg.Angle,
		QuizTime: answers.QuizTime,
		defaults: cfg,
		Sheet: answer.NewSheet(answers.TolerancePercent,
			answer.Field{Key: FieldPosY, Label: "Height y(t)", Unit: "m"},
			answer.Field{Key: FieldVelY, Label: "Vertical speed vy(t)", Unit: "m/s"},
			answer.Field{Key: FieldTimeMax, Label: "Time to apex", Unit: "s"},
		),
	}
	p.clock = clock.NewDriver(p, clock.Options{MaxDelta: cfg.MaxDelta, Scale: cfg.Scale})
	return p
}

func (p *Projectile) Name() string  { return "projectile" }
func (p *Projectile) Title() string { return "Projectile Motion" }

func (p *Projectile) Params() []Param {
	return []Param{
		{Name: "v0", Label: "v0", Unit: "m/s", Min: 0, Max: 100, Step: 1},
		{Name: "angle", Label: "θ", Unit: "°", Min: 0, Max: 90, Step: 1},
	}
}

func (p *Projectile) Get(name string) (float64, error) {
	switch name {
	case "v0":
		return p.V0, nil
	case "angle":
		return p.Angle, nil
	}
	return 0, unknown(name)
}

// Set changes a launch parameter and re-settles the current time against
// the new flight, so a shorter flight finishes the clock.
func (p *Projectile) Set(name string, value float64) error {
	if _, err := p.Get(name); err != nil {
		return err
	}
	if err := checkValue(name, value); err != nil {
		return err
	}
	switch name {
	case "v0":
		p.V0 = value
	case "angle":
		p.Angle = value
	}
	p.clock.Resettle()
	return nil
}

func (p *Projectile) Clock() *clock.Driver { return p.clock }

func (p *Projectile) Reset() {
	p.clock.Reset()
}

// FlightTime is the total time of flight, never negative.
func (p *Projectile) FlightTime() float64 {
	return math.Max(0, physics.FlightTime(p.V0, p.Angle))
}

// Settle snaps to the landing time once the flight is over.
func (p *Projectile) Settle(t float64) (float64, bool) {
	end := p.FlightTime()
	if t >= end {
		return end, true
	}
	return t, false
}

// At samples the trajectory at t.
func (p *Projectile) At(t float64) physics.Point {
	return physics.ProjectilePoint(p.V0, p.Angle, t)
}

// Trajectory samples the full flight at n+1 evenly spaced instants.
func (p *Projectile) Trajectory(n int) []physics.Point {
	if n < 1 {
		n = 1
	}
	end := p.FlightTime()
	pts := make([]physics.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, p.At(end*float64(i)/float64(n)))
	}
	return pts
}

func (p *Projectile) Answers() physics.ProjectileAnswers {
	return physics.Projectile(p.V0, p.Angle, p.QuizTime)
}

func (p *Projectile) Expected() map[string]float64 {
	a := p.Answers()
	return map[string]float64{
		FieldPosY:    a.PosY,
		FieldVelY:    a.VelY,
		FieldTimeMax: a.TimeMax,
	}
}

// Grade checks the answer sheet and returns the number of correct fields.
func (p *Projectile) Grade() int {
	return p.Sheet.Grade(p.Expected())
}

func (p *Projectile) Readout() []Reading {
	t := p.clock.Elapsed()
	pt := p.At(t)
	rangeM, heightM := physics.TrajectoryExtent(p.V0, p.Angle)
	return []Reading{
		{Label: "t", Value: t, Unit: "s"},
		{Label: "x", Value: pt.X, Unit: "m"},
		{Label: "y", Value: pt.Y, Unit: "m"},
		{Label: "vx", Value: pt.VX, Unit: "m/s"},
		{Label: "vy", Value: pt.VY, Unit: "m/s"},
		{Label: "T flight", Value: p.FlightTime(), Unit: "s"},
		{Label: "range", Value: rangeM, Unit: "m"},
		{Label: "max height", Value: heightM, Unit: "m"},
	}
}
