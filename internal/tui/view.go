package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/scenario"
	"github.com/san-kum/mechlab/internal/viz"
)

var lessonInfo = map[string]string{
	"vectors":    "components and resultants",
	"projectile": "launch, apex and landing",
	"forces":     "friction on a rough floor",
	"energy":     "potential to kinetic",
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenScenario:
		return m.viewScenario()
	}
	return ""
}

func (m model) viewMenu() string {
	st := m.styles
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.Label.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + viz.GradientText("m e c h l a b", st.Theme.Primary, st.Theme.Accent) + "\n")
	b.WriteString(st.Label.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, name := range m.names {
		desc := lessonInfo[name]
		if i == m.cursor {
			b.WriteString("      " + st.Selected.Render("▸ "+fmt.Sprintf("%-12s", name)) + st.Value.Render(desc) + "\n")
		} else {
			b.WriteString("        " + st.Label.Render(fmt.Sprintf("%-12s", name)+desc) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("      " + st.Incorrect.Render(m.status) + "\n")
	}
	b.WriteString(st.Hint.Render("      ↑↓ select   enter open   t theme ("+st.Theme.Name+")   q quit") + "\n")
	return b.String()
}

func (m model) viewScenario() string {
	st := m.styles
	s := m.active
	var b strings.Builder

	b.WriteString("\n  " + st.Title.Render(s.Title()) + "  " + m.statusBadge() + "\n")

	cw := max(m.width-6, 40)
	ch := max(m.height-18, 10)
	canvas := viz.NewCanvas(cw, ch)
	m.drawScene(canvas)
	b.WriteString(st.Panel.Render(canvas.String()) + "\n")

	b.WriteString(m.viewParams() + "\n")
	b.WriteString(m.viewReadout() + "\n")

	switch sc := s.(type) {
	case *scenario.Projectile:
		b.WriteString(m.viewSheet(sc))
	case *scenario.Forces:
		if m.challengeMode {
			b.WriteString(m.viewChallenge())
		} else if len(m.history) > 1 {
			b.WriteString("  " + st.Label.Render("v ") + st.Value.Render(viz.Sparkline(m.history, 40)) + "\n")
		}
	case *scenario.Energy:
		b.WriteString(m.viewEnergy(sc))
	}

	if m.status != "" {
		b.WriteString("  " + st.Incorrect.Render(m.status) + "\n")
	}
	b.WriteString("\n" + st.Hint.Render("  "+m.helpLine()) + "\n")
	return b.String()
}

func (m model) statusBadge() string {
	st := m.styles
	clk := m.active.Clock()
	if clk == nil {
		return ""
	}
	label := fmt.Sprintf("%s  t=%.2fs  x%.1f", clk.Status(), clk.Elapsed(), clk.Scale())
	switch clk.Status() {
	case clock.Running:
		return st.Running.Render("● " + label)
	case clock.Finished:
		return st.Finished.Render("■ " + label)
	}
	return st.Paused.Render("○ " + label)
}

func (m model) drawScene(c *viz.Canvas) {
	switch s := m.active.(type) {
	case *scenario.Vectors:
		viz.DrawVectors(c, s.A, s.B, s.ShowResultant)
	case *scenario.Projectile:
		viz.DrawTrajectory(c, s.V0, s.Angle, s.Clock().Elapsed())
	case *scenario.Forces:
		t := s.Clock().Elapsed()
		viz.DrawForces(c, s.Result(), s.Force, s.Angle, s.Displacement(t))
	case *scenario.Energy:
		ff, e := s.State()
		viz.DrawEnergy(c, s.Height, ff, e)
	}
}

func (m model) viewParams() string {
	st := m.styles
	var parts []string
	for i, p := range m.active.Params() {
		v, _ := m.active.Get(p.Name)
		text := fmt.Sprintf("%s %.2f%s", p.Label, v, p.Unit)
		if i == m.param {
			parts = append(parts, st.Selected.Render("▸ "+text))
		} else {
			parts = append(parts, st.Label.Render("  "+text))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m model) viewReadout() string {
	st := m.styles
	var parts []string
	for _, r := range m.active.Readout() {
		parts = append(parts, st.Label.Render(r.Label+"=")+st.Value.Render(fmt.Sprintf("%.2f", r.Value))+st.Label.Render(r.Unit))
	}
	return "  " + strings.Join(parts, "  ")
}

func (m model) viewSheet(p *scenario.Projectile) string {
	st := m.styles
	var b strings.Builder
	b.WriteString("\n  " + st.Value.Render(fmt.Sprintf("At t = %.1f s, find:", p.QuizTime)) + "\n")
	for i, f := range p.Sheet.Fields() {
		text := f.Text
		if m.editing && i == m.field {
			text = m.editBuf + "▋"
		}
		line := fmt.Sprintf("%-22s %10s %-4s", f.Label, text, f.Unit)
		mark := st.Pending.Render("·")
		switch f.Verdict {
		case answer.Correct:
			mark = st.Correct.Render("✓")
		case answer.Incorrect:
			mark = st.Incorrect.Render("✗")
		}
		if m.editing && i == m.field {
			line = st.Selected.Render(line)
		}
		b.WriteString("   " + mark + " " + line + "\n")
	}
	return b.String()
}

func (m model) viewChallenge() string {
	st := m.styles
	c := m.current
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n  " + st.Value.Render("Challenge") + st.Label.Render(" "+c.ID[:8]) + "\n")
	b.WriteString(fmt.Sprintf("  m=%.0fkg  F=%.0fN  θ=%.0f°  μs=%.2f  μk=%.2f\n",
		c.Mass, c.Force, c.Angle, c.MuStatic, c.MuKinetic))
	b.WriteString("  " + c.Prompt() + "\n")
	if m.editing {
		b.WriteString("  > " + st.Selected.Render(m.editBuf+"▋") + "\n")
	}
	if fb := m.feedback; fb != nil {
		style := st.Incorrect
		if fb.Correct {
			style = st.Correct
		}
		b.WriteString("  " + style.Render(fb.Message) + "\n")
	}
	return b.String()
}

func (m model) viewEnergy(e *scenario.Energy) string {
	st := m.styles
	_, res := e.State()
	const width = 24

	var b strings.Builder
	rows := []struct {
		label string
		value float64
		style lipgloss.Style
	}{
		{"PE", res.PE, st.VectorA},
		{"KE", res.KE, st.Correct},
		{"E ", res.Total, st.Value},
	}
	for _, r := range rows {
		frac := viz.EnergyFraction(r.value, res.Total)
		b.WriteString(fmt.Sprintf("  %s %s %8.1f J\n", st.Label.Render(r.label), viz.ProgressBar(frac, width, r.style), r.value))
	}
	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(max(min(m.width-12, 60), 20)),
			asciigraph.Caption("kinetic energy (J)"))
		b.WriteString("\n" + graph + "\n")
	}
	return b.String()
}

func (m model) helpLine() string {
	if m.editing {
		return "0-9 . - type   tab next field   enter submit   esc cancel"
	}
	switch m.active.(type) {
	case *scenario.Vectors:
		return "space resultant   tab/↑↓ select   ←→ adjust   t theme   q back"
	case *scenario.Projectile:
		return "space play/pause   r reset   tab/↑↓ select   ←→ adjust   enter answer   t theme   q back"
	case *scenario.Forces:
		if m.challengeMode {
			return "space play/pause   r reset   enter answer   n next   c exit challenge   q back"
		}
		return "space play/pause   r reset   tab/↑↓ select   ←→ adjust   c challenge   t theme   q back"
	}
	return "space play/pause   r reset   tab/↑↓ select   ←→ adjust   t theme   q back"
}
