package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/physics"
)

const (
	trajectorySamples = 120
	blockWidth        = 12
	blockHeight       = 8
	blockMetre        = 2 // sub-pixels per metre of block travel
	barWidth          = 6
	barGap            = 4
)

// DrawVectors draws A and B from the canvas centre and, when asked, the
// resultant R with the dashed parallelogram that builds it.
func DrawVectors(c *Canvas, a, b physics.Vector, showResultant bool) {
	ac, bc := a.Components(), b.Components()
	r := physics.Sum(a, b)

	extent := max(math.Abs(ac.X), math.Abs(ac.Y), math.Abs(bc.X), math.Abs(bc.Y))
	if showResultant {
		extent = max(extent, math.Abs(r.X), math.Abs(r.Y))
	}

	w, h := c.SubWidth(), c.SubHeight()
	vp := Viewport{OriginX: w / 2, OriginY: h / 2, Scale: VectorScale(extent, w, h)}
	c.DrawDashed(0, vp.OriginY, w-1, vp.OriginY, 2)
	c.DrawDashed(vp.OriginX, 0, vp.OriginX, h-1, 2)

	ax, ay := vp.Project(ac.X, ac.Y)
	bx, by := vp.Project(bc.X, bc.Y)
	c.DrawArrow(vp.OriginX, vp.OriginY, ax, ay)
	c.DrawArrow(vp.OriginX, vp.OriginY, bx, by)

	if showResultant {
		rx, ry := vp.Project(r.X, r.Y)
		c.DrawDashed(ax, ay, rx, ry, 3)
		c.DrawDashed(bx, by, rx, ry, 3)
		c.DrawArrow(vp.OriginX, vp.OriginY, rx, ry)
		tipLabel(c, vp, rx, ry, "R")
	}
	tipLabel(c, vp, ax, ay, "A")
	tipLabel(c, vp, bx, by, "B")
}

// tipLabel places text just beyond an arrow tip, away from the origin.
func tipLabel(c *Canvas, vp Viewport, x, y int, text string) {
	dx, dy := 2, 0
	if x < vp.OriginX {
		dx = -2 * (len(text) + 1)
	}
	if y < vp.OriginY {
		dy = -4
	}
	c.Label(x+dx, y+dy, text)
}

// DrawTrajectory draws the whole predicted flight dashed, the part flown by
// time t solid, and the projectile with its velocity arrow.
func DrawTrajectory(c *Canvas, v0, angleDeg, t float64) {
	rangeM, heightM := physics.TrajectoryExtent(v0, angleDeg)
	w, h := c.SubWidth(), c.SubHeight()
	const margin = 2
	vp := Viewport{
		OriginX: margin,
		OriginY: h - 1 - margin,
		Scale:   TrajectoryScale(rangeM, heightM, w-2*margin, h-2*margin),
	}
	c.DrawLine(0, vp.OriginY, w-1, vp.OriginY)

	tf := physics.FlightTime(v0, angleDeg)
	if tf > 0 && !math.IsInf(tf, 0) {
		px, py := vp.Project(0, 0)
		for i := 1; i <= trajectorySamples; i++ {
			ti := tf * float64(i) / trajectorySamples
			p := physics.ProjectilePoint(v0, angleDeg, ti)
			x, y := vp.Project(p.X, math.Max(p.Y, 0))
			if ti <= t {
				c.DrawLine(px, py, x, y)
			} else if i%2 == 0 {
				c.Set(x, y)
			}
			px, py = x, y
		}
	}

	p := physics.ProjectilePoint(v0, angleDeg, t)
	x, y := vp.Project(p.X, math.Max(p.Y, 0))
	c.Dot(x, y, 1)
	c.DrawArrow(x, y, x+round(p.VX*0.5), y-round(p.VY*0.5))
}

// DrawForces draws the block on the floor, shifted by displacement metres
// and wrapped around the canvas, with the applied, friction and normal
// forces as arrows from its centre.
func DrawForces(c *Canvas, r physics.DynamicsResult, force, angleDeg, displacement float64) {
	w, h := c.SubWidth(), c.SubHeight()
	ground := h - 5
	c.DrawLine(0, ground, w-1, ground)

	span := max(w-blockWidth, 1)
	x0 := (w/4 + round(displacement*blockMetre)) % span
	if x0 < 0 {
		x0 += span
	}
	c.DrawBox(x0, ground-blockHeight, x0+blockWidth, ground)

	cx, cy := x0+blockWidth/2, ground-blockHeight/2
	friction := math.Abs(r.Friction)
	largest := max(math.Abs(force), friction, math.Abs(r.Normal), 1)
	if math.IsNaN(largest) || math.IsInf(largest, 0) {
		largest = 1
	}
	s := float64(w) / 4 / largest

	rad := physics.ToRadians(angleDeg)
	fx, fy := cx+round(force*math.Cos(rad)*s), cy-round(force*math.Sin(rad)*s)
	c.DrawArrow(cx, cy, fx, fy)
	c.Label(fx+2, fy, "F")

	if friction > 0 {
		fr := cx - round(friction*s)
		c.DrawArrow(cx, ground-1, fr, ground-1)
		c.Label(fr-4, ground-1, "f")
	}
	if r.Normal > 0 {
		ny := ground - blockHeight - round(r.Normal*s)
		c.DrawArrow(cx, ground-blockHeight, cx, ny)
		c.Label(cx+2, ny, "N")
	}
	c.Label(0, h-1, fmt.Sprintf("a = %.2f m/s²", r.Acceleration))
}

// DrawEnergy draws the drop tower and ball on the left and PE, KE and total
// energy bars on the right, all relative to the total energy.
func DrawEnergy(c *Canvas, h0 float64, s physics.FreeFallState, e physics.EnergyResult) {
	w, h := c.SubWidth(), c.SubHeight()
	ground := h - 5
	scene := w * 3 / 5
	c.DrawLine(0, ground, scene, ground)

	hs := HeightScale(h0, ground-4)
	top := ground - round(math.Max(h0, 0)*hs)
	c.FillBox(2, top, 6, ground)

	ballX := 16
	ballY := ground - round(math.Max(s.Height, 0)*hs) - 2
	c.Dot(ballX, ballY, 2)
	c.DrawDashed(7, ballY+2, ballX-3, ballY+2, 2)
	c.Label(ballX+4, ballY, fmt.Sprintf("h = %.2f m", s.Height))

	maxBar := ground - 4
	bars := []struct {
		label string
		value float64
	}{
		{"PE", e.PE},
		{"KE", e.KE},
		{"E", e.Total},
	}
	x := scene + barGap
	for _, b := range bars {
		frac := EnergyFraction(b.value, e.Total)
		c.DrawBox(x, ground-maxBar, x+barWidth, ground)
		if fill := round(frac * float64(maxBar)); fill > 0 {
			c.FillBox(x, ground-fill, x+barWidth, ground)
		}
		c.Label(x, h-1, b.label)
		x += barWidth + barGap
	}
}
