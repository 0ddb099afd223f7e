package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/challenge"
	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/observability"
	"github.com/san-kum/mechlab/internal/scenario"
	"github.com/san-kum/mechlab/internal/viz"
)

const historyLen = 120

type screen int

const (
	screenMenu screen = iota
	screenScenario
)

// Options wires the app to its collaborators. Zero fields get defaults.
type Options struct {
	Config    *config.Config
	Collector *observability.Collector
	Logger    *zap.Logger
	Generator *challenge.Generator
}

type model struct {
	screen   screen
	cursor   int
	names    []string
	registry *scenario.Registry

	active scenario.Scenario
	param  int

	// answer entry, shared by the projectile sheet and challenge mode
	editing bool
	field   int
	editBuf string

	challengeMode bool
	generator     *challenge.Generator
	current       *challenge.Challenge
	feedback      *challenge.Feedback

	frame    time.Duration
	lastTick time.Time
	history  []float64

	styles    viz.Styles
	collector *observability.Collector
	log       *zap.Logger
	status    string

	width  int
	height int
}

func New(opts Options) model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gen := opts.Generator
	if gen == nil {
		gen = challenge.NewGenerator(seeded(cfg.Challenge.Seed))
	}
	fps := max(cfg.Display.FPS, 1)

	reg := scenario.NewRegistry(cfg)
	return model{
		screen:    screenMenu,
		names:     reg.Names(),
		registry:  reg,
		generator: gen,
		frame:     time.Second / time.Duration(fps),
		styles:    viz.NewStyles(viz.GetTheme(cfg.Display.Theme)),
		collector: opts.Collector,
		log:       log,
		width:     80,
		height:    30,
	}
}

func seeded(seed uint64) challenge.Source {
	if seed == 0 {
		return nil
	}
	return challenge.NewSeeded(seed)
}

func (m model) Init() tea.Cmd { return nil }

// tickMsg carries the token of the run that scheduled it, so a tick that
// arrives after a pause, reset or scenario switch is dropped.
type tickMsg struct {
	token clock.Token
	at    time.Time
}

func (m model) tick(tok clock.Token) tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg{token: tok, at: t} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.onTick(msg)
	}
	return m, nil
}

func (m model) onTick(msg tickMsg) (model, tea.Cmd) {
	if m.screen != screenScenario || m.active == nil {
		return m, nil
	}
	clk := m.active.Clock()
	if clk == nil {
		return m, nil
	}
	if tok, _ := clk.Current(); tok != msg.token {
		return m, nil
	}

	delta := msg.at.Sub(m.lastTick).Seconds()
	m.lastTick = msg.at
	more := clk.Tick(msg.token, delta)
	m.collector.ObserveTick(m.active.Name(), delta, clk.Elapsed())
	m.record()

	if !more {
		if clk.Status() == clock.Finished {
			m.log.Info("run finished",
				zap.String("scenario", m.active.Name()),
				zap.Float64("elapsed", clk.Elapsed()))
		}
		return m, nil
	}
	return m, m.tick(msg.token)
}

// record appends the value the current view charts over time.
func (m *model) record() {
	var v float64
	switch s := m.active.(type) {
	case *scenario.Energy:
		_, e := s.State()
		v = e.KE
	case *scenario.Forces:
		v = s.Result().Acceleration * s.Clock().Elapsed()
	default:
		return
	}
	m.history = append(m.history, v)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		return m, tea.Quit
	}
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenScenario:
		if m.editing {
			return m.editKey(msg)
		}
		return m.scenarioKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "t":
		m.cycleTheme()
	case "enter", " ":
		s, err := m.registry.Get(m.names[m.cursor])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.open(s)
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) open(s scenario.Scenario) {
	m.active = s
	m.screen = screenScenario
	m.param = 0
	m.history = nil
	m.status = ""
	m.challengeMode = false
	m.current = nil
	m.feedback = nil
	m.log.Info("scenario opened", zap.String("scenario", s.Name()))
}

// leave pauses the active clock so its pending tick goes stale.
func (m *model) leave() {
	if m.active == nil {
		return
	}
	if clk := m.active.Clock(); clk != nil {
		clk.Pause()
	}
	m.log.Info("scenario closed", zap.String("scenario", m.active.Name()))
}

func (m model) scenarioKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.status = ""
	params := m.active.Params()

	switch msg.String() {
	case "q", "esc":
		m.leave()
		m.active = nil
		m.screen = screenMenu
		m.editing = false
		return m, tea.ClearScreen
	case " ":
		return m.toggle()
	case "r":
		m.active.Reset()
		m.history = nil
		m.log.Debug("scenario reset", zap.String("scenario", m.active.Name()))
	case "tab", "down", "j":
		m.param = (m.param + 1) % len(params)
	case "shift+tab", "up", "k":
		m.param = (m.param - 1 + len(params)) % len(params)
	case "left", "h":
		m.adjust(params[m.param].Name, -1)
	case "right", "l":
		m.adjust(params[m.param].Name, 1)
	case "enter":
		m.beginEdit()
	case "c":
		if f, ok := m.active.(*scenario.Forces); ok {
			m.challengeMode = !m.challengeMode
			if m.challengeMode {
				m.nextChallenge(f)
			} else {
				m.current, m.feedback = nil, nil
			}
		}
	case "n":
		if f, ok := m.active.(*scenario.Forces); ok && m.challengeMode {
			m.nextChallenge(f)
		}
	case "t":
		m.cycleTheme()
	}
	return m, nil
}

func (m model) toggle() (model, tea.Cmd) {
	clk := m.active.Clock()
	if clk == nil {
		if v, ok := m.active.(*scenario.Vectors); ok {
			v.ToggleResultant()
		}
		return m, nil
	}
	tok, started := clk.Toggle()
	m.log.Debug("clock toggled",
		zap.String("scenario", m.active.Name()),
		zap.Stringer("status", clk.Status()))
	if !started {
		if clk.Status() == clock.Finished {
			m.status = "finished: press r to replay"
		}
		return m, nil
	}
	m.lastTick = time.Now()
	return m, m.tick(tok)
}

func (m *model) adjust(name string, steps int) {
	if err := scenario.Adjust(m.active, name, steps); err != nil {
		m.status = err.Error()
		return
	}
	v, _ := m.active.Get(name)
	m.log.Debug("parameter changed",
		zap.String("scenario", m.active.Name()),
		zap.String("param", name),
		zap.Float64("value", v))
}

func (m *model) cycleTheme() {
	m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme.Name))
}

func (m *model) nextChallenge(f *scenario.Forces) {
	c := m.generator.Next()
	f.ApplyChallenge(c)
	m.current = c
	m.feedback = nil
	m.history = nil
	m.collector.RecordChallenge(c.Target.String())
	m.log.Info("challenge issued",
		zap.String("id", c.ID),
		zap.Stringer("target", c.Target))
}

func (m *model) beginEdit() {
	switch s := m.active.(type) {
	case *scenario.Projectile:
		m.editing = true
		m.field = 0
		m.editBuf = s.Sheet.Fields()[0].Text
	case *scenario.Forces:
		if m.challengeMode && m.current != nil {
			m.editing = true
			m.editBuf = ""
		}
	}
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case "enter":
		m.commit(true)
	case "tab":
		m.commit(false)
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if strings.ContainsRune("0123456789.-+eE", r) {
					m.editBuf += string(r)
				}
			}
		}
	}
	return m, nil
}

// commit stores the edit buffer. On the projectile sheet it moves to the
// next field and grades after the last one when grade is set.
func (m *model) commit(grade bool) {
	switch s := m.active.(type) {
	case *scenario.Projectile:
		fields := s.Sheet.Fields()
		if err := s.Sheet.Set(fields[m.field].Key, m.editBuf); err != nil {
			m.status = err.Error()
			return
		}
		if m.field < len(fields)-1 {
			m.field++
			m.editBuf = s.Sheet.Fields()[m.field].Text
			return
		}
		m.editing = false
		m.editBuf = ""
		if grade {
			m.gradeSheet(s)
		}
	case *scenario.Forces:
		fb, ok := m.current.Check(m.editBuf)
		if !ok {
			m.status = "enter a number"
			return
		}
		m.feedback = &fb
		m.editing = false
		m.collector.RecordAnswer("challenge", fb.Correct)
		m.log.Info("challenge answered",
			zap.String("id", m.current.ID),
			zap.String("answer", m.editBuf),
			zap.Bool("correct", fb.Correct))
		m.editBuf = ""
	}
}

func (m *model) gradeSheet(p *scenario.Projectile) {
	n := p.Grade()
	for _, f := range p.Sheet.Fields() {
		m.collector.RecordAnswer(p.Name(), f.Verdict == answer.Correct)
	}
	m.log.Info("answers graded",
		zap.String("scenario", p.Name()),
		zap.Int("correct", n),
		zap.Int("fields", len(p.Sheet.Fields())))
}

// Run starts the full-screen app and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
