package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/challenge"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/observability"
	"github.com/san-kum/mechlab/internal/scenario"
)

func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = update(t, m, msg)
	}
	return m
}

func newTestModel(t *testing.T) (model, *observability.Collector) {
	t.Helper()
	col, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	m := New(Options{
		Collector: col,
		Generator: challenge.NewGenerator(challenge.NewSeeded(7)),
	})
	return m, col
}

func openScenario(t *testing.T, m model, name string) model {
	t.Helper()
	for i, n := range m.names {
		if n == name {
			for range i {
				m = send(t, m, key("down"))
			}
			m = send(t, m, key("enter"))
			require.Equal(t, screenScenario, m.screen)
			require.Equal(t, name, m.active.Name())
			return m
		}
	}
	t.Fatalf("scenario %q not in menu", name)
	return m
}

func TestMenu(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, name := range []string{"vectors", "projectile", "forces", "energy"} {
		assert.Contains(t, view, name)
	}

	m = send(t, m, key("down"), key("down"), key("down"), key("down"))
	assert.Equal(t, 3, m.cursor, "cursor stops at the last entry")

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestThemeCycle(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, "default", m.styles.Theme.Name)
	m = send(t, m, key("t"))
	assert.Equal(t, "retro", m.styles.Theme.Name)
}

func TestPlayTickAndStaleDrop(t *testing.T) {
	m, col := newTestModel(t)
	m = openScenario(t, m, "energy")
	clk := m.active.Clock()

	m, cmd := update(t, m, key("space"))
	require.NotNil(t, cmd, "play schedules a tick")
	tok, status := clk.Current()
	require.Equal(t, clock.Running, status)

	m, cmd = update(t, m, tickMsg{token: tok, at: m.lastTick.Add(100 * time.Millisecond)})
	assert.NotNil(t, cmd, "running clock reschedules")
	assert.InDelta(t, 0.1, clk.Elapsed(), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Ticks.WithLabelValues("energy")))

	m = send(t, m, key("space"))
	require.Equal(t, clock.Stopped, clk.Status())

	m, cmd = update(t, m, tickMsg{token: tok, at: m.lastTick.Add(time.Second)})
	assert.Nil(t, cmd, "stale tick is not rescheduled")
	assert.InDelta(t, 0.1, clk.Elapsed(), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Ticks.WithLabelValues("energy")))
}

func TestTickFinishesRun(t *testing.T) {
	m, _ := newTestModel(t)
	m = openScenario(t, m, "energy")
	clk := m.active.Clock()

	m = send(t, m, key("space"))
	tok, _ := clk.Current()
	m, cmd := update(t, m, tickMsg{token: tok, at: m.lastTick.Add(10 * time.Second)})
	assert.Nil(t, cmd)
	assert.Equal(t, clock.Finished, clk.Status())
	assert.Len(t, m.history, 1)

	m, cmd = update(t, m, key("space"))
	assert.Nil(t, cmd, "a finished clock does not restart on play")
	assert.NotEmpty(t, m.status)

	m = send(t, m, key("r"))
	assert.Equal(t, clock.Stopped, clk.Status())
	assert.Zero(t, clk.Elapsed())
}

func TestLeavingPausesClock(t *testing.T) {
	m, _ := newTestModel(t)
	m = openScenario(t, m, "projectile")
	p := m.active

	m = send(t, m, key("space"))
	require.Equal(t, clock.Running, p.Clock().Status())
	tok, _ := p.Clock().Current()

	m = send(t, m, key("q"))
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.active)
	assert.Equal(t, clock.Stopped, p.Clock().Status())

	_, cmd := update(t, m, tickMsg{token: tok, at: time.Now()})
	assert.Nil(t, cmd)
}

func TestVectorsKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = openScenario(t, m, "vectors")
	v := m.active.(*scenario.Vectors)
	before := v.A.Magnitude
	shown := v.ShowResultant

	m = send(t, m, key("right"))
	assert.Equal(t, before+v.Params()[0].Step, v.A.Magnitude)

	m = send(t, m, key("tab"), key("left"))
	assert.Equal(t, 1, m.param)

	m, cmd := update(t, m, key("space"))
	assert.Nil(t, cmd, "vectors has no clock to tick")
	assert.Equal(t, !shown, v.ShowResultant)
	assert.Contains(t, m.View(), "Vector Addition")
}

func TestProjectileAnswerSheet(t *testing.T) {
	m, col := newTestModel(t)
	m = openScenario(t, m, "projectile")
	p := m.active.(*scenario.Projectile)
	want := p.Answers()

	m = send(t, m, key("enter"))
	require.True(t, m.editing)
	assert.Contains(t, m.View(), "At t = 2.0 s")

	m = send(t, m,
		key(fmt.Sprintf("%.4f", want.PosY)), key("enter"),
		key(fmt.Sprintf("%.4f", want.VelY)), key("enter"),
		key(fmt.Sprintf("%.4f", want.TimeMax)), key("enter"),
	)
	assert.False(t, m.editing)
	for _, f := range p.Sheet.Fields() {
		assert.Equal(t, answer.Correct, f.Verdict, f.Key)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(col.Answers.WithLabelValues("projectile", "correct")))
}

func TestAnswerEntryFiltersInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = openScenario(t, m, "projectile")

	m = send(t, m, key("enter"), key("1x2"), key("backspace"), key("7"))
	assert.Equal(t, "17", m.editBuf)

	m = send(t, m, key("esc"))
	assert.False(t, m.editing)
	assert.Empty(t, m.editBuf)
}

func TestChallengeMode(t *testing.T) {
	m, col := newTestModel(t)
	m = openScenario(t, m, "forces")
	f := m.active.(*scenario.Forces)

	m = send(t, m, key("c"))
	require.True(t, m.challengeMode)
	require.NotNil(t, m.current)
	c := m.current
	assert.Equal(t, c.Mass, f.Mass)
	assert.Equal(t, c.Force, f.Force)
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Challenges.WithLabelValues(c.Target.String())))
	assert.Contains(t, m.View(), c.Prompt())

	m = send(t, m, key("enter"), key("enter"))
	assert.True(t, m.editing, "an empty answer is not graded")
	assert.Equal(t, "enter a number", m.status)

	m = send(t, m, key(fmt.Sprintf("%.4f", c.Value)), key("enter"))
	require.NotNil(t, m.feedback)
	assert.True(t, m.feedback.Correct)
	assert.Equal(t, "Correct! Well done.", m.feedback.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Answers.WithLabelValues("challenge", "correct")))

	m = send(t, m, key("n"))
	assert.NotEqual(t, c.ID, m.current.ID)
	assert.Nil(t, m.feedback)

	m = send(t, m, key("c"))
	assert.False(t, m.challengeMode)
	assert.Nil(t, m.current)
}

func TestScenarioViews(t *testing.T) {
	for _, name := range []string{"vectors", "projectile", "forces", "energy"} {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
			m = openScenario(t, m, name)
			view := m.View()
			assert.Contains(t, view, m.active.Title())
			assert.True(t, strings.Contains(view, "q back"))
		})
	}
}
