package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var familyInfo = [physics.Count]string{
	physics.Lorenz:    "the butterfly",
	physics.Banlue:    "tanh coupled",
	physics.Halvorsen: "cyclic symmetric",
	physics.Aizawa:    "sphere with a tube",
	physics.LuChen:    "between Lorenz and Chen",
	physics.Genesio:   "jerk system",
}

const historyLen = 120

type state int

const (
	stateMenu state = iota
	stateSim
)

type model struct {
	state  state
	cursor int

	ctrl     *sim.Controller
	screenW  int
	screenH  int
	theme    viz.Theme
	settings bool
	slider   int
	speed    int

	segs      []sim.Segment
	history   []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int

	err error
}

// NewApp wraps a controller in an interactive terminal UI. When skipMenu
// is set the simulation starts straight away on the controller's active
// family.
func NewApp(ctrl *sim.Controller, cfg *config.Config, skipMenu bool) tea.Model {
	m := model{
		ctrl:    ctrl,
		screenW: cfg.Screen.Width,
		screenH: cfg.Screen.Height,
		theme:   viz.ThemeClassic,
		cursor:  int(ctrl.Active()),
		speed:   1,
		history: make([]float64, 0, historyLen),
		width:   100,
		height:  32,
	}
	if skipMenu {
		m.state = stateSim
	}
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctrl *sim.Controller, cfg *config.Config, skipMenu bool) error {
	_, err := tea.NewProgram(NewApp(ctrl, cfg, skipMenu), tea.WithAltScreen()).Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	if m.state == stateSim {
		return tick()
	}
	return nil
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
		if m.state != stateSim {
			return m, nil
		}
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now
		m.advance()
		return m, tick()
	}
	return m, nil
}

// advance integrates speed points, the last of them through Frame. A
// paused controller draws nothing, so the previous frame stays on screen.
func (m *model) advance() {
	if m.ctrl.State() == sim.Running {
		for i := 1; i < m.speed; i++ {
			m.ctrl.Step()
		}
	}
	segs := m.ctrl.Frame()
	if segs == nil {
		return
	}
	m.segs = segs
	m.history = append(m.history, m.ctrl.Head().Z)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *model) clear() {
	m.segs = nil
	m.history = m.history[:0]
}

// reset switches family, keeping the failure for the status line.
func (m *model) reset(f physics.Family) {
	if m.err = m.ctrl.Reset(f); m.err != nil {
		return
	}
	m.clear()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.simKey(msg)
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < physics.Count-1 {
			m.cursor++
		}
	case "enter", " ", "space":
		m.reset(physics.Family(m.cursor))
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		m.state = stateMenu
		m.cursor = int(m.ctrl.Active())
		return m, tea.ClearScreen
	case "1", "2", "3", "4", "5", "6":
		m.reset(physics.Family(key[0] - '1'))
	case "r":
		m.reset(m.ctrl.Active())
	case " ", "space", "c":
		m.ctrl.TogglePause()
	case "s":
		m.settings = !m.settings
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.ctrl.SetGradient(m.theme.Trail)
	case "+", "=":
		m.speed = min(m.speed*2, 64)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case "up", "k":
		if m.settings && m.slider > 0 {
			m.slider--
		}
	case "down", "j":
		if m.settings && m.slider < len(sim.ParamRanges())-1 {
			m.slider++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	}
	return m, nil
}

// nudge moves the selected slider by one hundredth of its range.
func (m *model) nudge(dir float64) {
	if !m.settings {
		return
	}
	r := sim.ParamRanges()[m.slider]
	step := (r.Max - r.Min) / 100
	if r.Param.Integral() {
		step = max(step, 1)
	}
	m.ctrl.Set(r.Param, m.ctrl.Get(r.Param)+dir*step)
}

func (m model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewSim()
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("       " + viz.GradientText("s t r a n g e   a t t r a c t o r s", m.theme.Trail, m.theme.Background) + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for _, f := range physics.Families() {
		name := fmt.Sprintf("%d %-12s", int(f)+1, f)
		if int(f) == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(name) + dim.Render(familyInfo[f]) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + dimmer.Render(familyInfo[f]) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	panelW := 0
	if m.settings {
		panelW = 34
	}
	cw := max(m.width-6-panelW, 40)
	ch := max(m.height-14, 10)

	canvas := viz.NewCanvas(cw, ch)
	canvas.Background = m.theme.Background
	NewRaster(canvas, m.screenW, m.screenH).Draw(canvas, m.segs)

	var b strings.Builder

	status := viz.StatusRunning.Render("● running")
	if m.ctrl.State() == sim.Paused {
		status = viz.StatusPaused.Render("○ paused")
	}
	fmt.Fprintf(&b, "\n   %s %s  %s  %s\n",
		cyan.Render(m.ctrl.Active().String()), status,
		dim.Render(fmt.Sprintf("x%d", m.speed)), dim.Render(fmt.Sprintf("%.0ffps", m.fps)))

	if m.err != nil {
		fmt.Fprintf(&b, "   %s\n", viz.StatusRecording.Render(m.err.Error()))
	}

	fill := float64(m.ctrl.Len()) / float64(max(m.ctrl.Model().MaxLength, 1))
	fmt.Fprintf(&b, "   %s %s\n\n", viz.ProgressBar(fill, 30),
		dim.Render(fmt.Sprintf("%d/%d points", m.ctrl.Len(), m.ctrl.Model().MaxLength)))

	view := canvas.Render()
	if m.settings {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, m.viewSettings(panelW))
	}
	for _, row := range strings.Split(strings.TrimSuffix(view, "\n"), "\n") {
		b.WriteString("   " + row + "\n")
	}

	head := m.ctrl.Head()
	fmt.Fprintf(&b, "\n   %s%s  %s%s\n",
		viz.MetricLabel.Render("head "), viz.MetricValue.Render(head.String()),
		viz.MetricLabel.Render("mid "), viz.MetricValue.Render(m.ctrl.Bounds().Midpoint().String()))

	if len(m.history) > 1 {
		plot := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(min(cw, 60)),
			asciigraph.Precision(1),
			asciigraph.Caption("z"))
		for _, line := range strings.Split(plot, "\n") {
			b.WriteString("   " + dim.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + viz.KeyHint.Render("   1-6 family  space pause  r restart  s settings  t theme  ±speed  q menu") + "\n")
	return b.String()
}

func (m model) viewSettings(w int) string {
	var b strings.Builder
	for i, r := range sim.ParamRanges() {
		v := m.ctrl.Get(r.Param)
		val := fmt.Sprintf("%.4g", v)
		if r.Param.Integral() {
			val = fmt.Sprintf("%d", int(v))
		}
		fill := (v - r.Min) / (r.Max - r.Min)
		line := fmt.Sprintf("%-7s %-9s ", r.Label, val)
		if i == m.slider {
			b.WriteString(viz.Selected.Render("▸ "+line) + viz.ProgressBar(fill, 10) + "\n")
		} else {
			b.WriteString("  " + dim.Render(line) + dimmer.Render(strings.Repeat("─", 10)) + "\n")
		}
	}
	b.WriteString("\n" + viz.GradientBar(m.ctrl.Gradient(), 26, m.theme.Background) + "\n")
	b.WriteString(dim.Render(m.theme.Name))
	return viz.Panel.Width(w - 2).Render(b.String())
}
