// cmd/orrery/tui.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/control"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/hud"
	"github.com/opd-ai/go-orrery/pkg/render"
	"github.com/opd-ai/go-orrery/pkg/render/snapshot"
	"github.com/opd-ai/go-orrery/pkg/render/terminal"
)

// pxPerCell maps virtual scene pixels to terminal columns.
const pxPerCell = 10.0

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))
)

type tickMsg time.Time

type tuiModel struct {
	controller *control.Controller
	env        *config.EnvironmentConfig
	bus        *event.Bus

	scene    *terminal.Scene
	renderer *render.SceneRenderer

	cols, rows int
	entering   bool
	dateBuffer string
	notice     string
	tick       time.Duration
}

func newTUIModel(controller *control.Controller, bus *event.Bus, env *config.EnvironmentConfig) *tuiModel {
	cfg := controller.Orrery().Config()
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 30
	}
	return &tuiModel{
		controller: controller,
		env:        env,
		bus:        bus,
		tick:       time.Duration(float64(time.Second) / rate),
	}
}

// startTUIRenderer runs the terminal frontend until quit.
func startTUIRenderer(controller *control.Controller, bus *event.Bus, env *config.EnvironmentConfig) error {
	m := newTUIModel(controller, bus, env)
	bus.Subscribe(event.ProviderDisabled, func(e event.Event) {
		if pe, ok := e.(*event.ProviderEvent); ok {
			m.notice = fmt.Sprintf("%s disabled: %s", pe.Name, pe.Reason)
		}
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m *tuiModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		ctx, cancel := context.WithTimeout(context.Background(), m.tick)
		defer cancel()
		if err := m.controller.Orrery().Tick(ctx); err != nil {
			m.notice = err.Error()
		}
		return m, m.scheduleTick()

	case tea.KeyMsg:
		if m.entering {
			return m.updateDateEntry(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// resize rebuilds the scene for the new terminal size. The pool contract
// holds within a scene; a terminal resize is a new scene.
func (m *tuiModel) resize(cols, rows int) {
	sceneRows := rows - 3
	if sceneRows < 4 {
		sceneRows = 4
	}
	if cols < 20 {
		cols = 20
	}
	m.cols, m.rows = cols, rows
	m.scene = terminal.NewScene(cols-2, sceneRows, pxPerCell)
	m.renderer = render.NewSceneRenderer(m.scene, m.controller.Orrery().Config())
	w, h := m.scene.Viewport()
	m.controller.ResetView(w, h)
}

func (m *tuiModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.controller.TogglePause()
	case "f":
		m.controller.ToggleFrame()
	case "d":
		m.controller.ToggleDirection()
	case "t":
		m.controller.ToggleTrails()
	case "o":
		m.controller.ToggleOrbits()
	case "u":
		m.controller.CycleUnit()
	case "n":
		m.controller.SyncNow()
	case "r":
		if m.scene != nil {
			w, h := m.scene.Viewport()
			m.controller.ResetView(w, h)
		}
	case "+", "=":
		m.controller.WheelViewport(1)
	case "-":
		m.controller.WheelViewport(-1)
	case "right":
		m.controller.WheelUnit(1)
	case "left":
		m.controller.WheelUnit(-1)
	case "h":
		m.controller.DragPan(pxPerCell*2, 0)
	case "l":
		m.controller.DragPan(-pxPerCell*2, 0)
	case "k":
		m.controller.DragPan(0, pxPerCell*2)
	case "j":
		m.controller.DragPan(0, -pxPerCell*2)
	case "[":
		m.stepSpeed(-1)
	case "]":
		m.stepSpeed(1)
	case "g":
		m.entering = true
		m.dateBuffer = ""
	case "p":
		m.saveSnapshot()
	}
	return m, nil
}

func (m *tuiModel) updateDateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitDate()
		m.entering = false
	case "esc":
		m.entering = false
	case "backspace":
		if len(m.dateBuffer) > 0 {
			m.dateBuffer = m.dateBuffer[:len(m.dateBuffer)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.dateBuffer += msg.String()
		}
	}
	return m, nil
}

// commitDate parses "YYYY-MM-DD" with an optional "HH:MM:SS" suffix and
// hands the fields to the controller, which validates before moving the
// clock.
func (m *tuiModel) commitDate() {
	var year, month, day, hour, minute, second int
	entry := strings.TrimSpace(m.dateBuffer)

	n, _ := fmt.Sscanf(entry, "%d-%d-%d %d:%d:%d", &year, &month, &day, &hour, &minute, &second)
	switch n {
	case 6:
	case 3:
		// Date-only entries land at noon, matching the epoch convention.
		hour, minute, second = 12, 0, 0
	default:
		m.notice = fmt.Sprintf("unparseable date %q", entry)
		return
	}

	if err := m.controller.CommitDate(year, month, day, hour, minute, second); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""
}

func (m *tuiModel) stepSpeed(dir int) {
	notches := []float64{0, 1, 5, 25, 100, 500}
	current := m.controller.Orrery().State().Speed
	idx := 0
	for i, n := range notches {
		if current >= n {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(notches) {
		idx = len(notches) - 1
	}
	m.controller.SetSpeed(notches[idx])
}

// saveSnapshot rasterizes the current frame to a PNG and puts the path on
// the system clipboard.
func (m *tuiModel) saveSnapshot() {
	scene, err := snapshot.NewScene(1280, 960)
	if err != nil {
		m.notice = err.Error()
		return
	}
	r := render.NewSceneRenderer(scene, m.controller.Orrery().Config())
	st := m.controller.Orrery().State()
	r.UpdateScene(&st)

	path, err := scene.SaveTimestamped(m.env.SnapshotDir, time.Now())
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.bus.Publish(event.NewSnapshotEvent(m, path))
	if err := clipboard.WriteAll(path); err != nil {
		m.notice = fmt.Sprintf("saved %s (clipboard unavailable)", path)
		return
	}
	m.notice = fmt.Sprintf("saved %s (path copied)", path)
}

func (m *tuiModel) View() string {
	if m.scene == nil {
		return "starting..."
	}

	st := m.controller.Orrery().State()
	m.renderer.UpdateScene(&st)

	var b strings.Builder
	b.WriteString(m.scene.Render())

	status := hud.Line(&st) + fmt.Sprintf(" | step %s", m.controller.SelectedUnit())
	b.WriteString(statusStyle.Width(m.cols).Render(status))
	b.WriteString("\n")

	switch {
	case m.entering:
		b.WriteString(promptStyle.Render("goto date: " + m.dateBuffer + "▌"))
	case m.notice != "":
		b.WriteString(noticeStyle.Render(m.notice))
	default:
		b.WriteString(helpStyle.Render("space pause | f frame | d direction | u unit | ←/→ step | g goto | n now | t trails | o orbits | +/- zoom | hjkl pan | r reset | p snapshot | q quit"))
	}
	return b.String()
}
