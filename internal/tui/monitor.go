// Package tui provides the interactive terminal monitor for a running
// simulation.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/firesim/internal/kernel"
	"github.com/san-kum/firesim/internal/metrics"
	"github.com/san-kum/firesim/internal/sim"
)

const (
	historyCapacity = 240
	graphWidth      = 60
	graphHeight     = 10
	tickRate        = time.Second / 30
)

type TickMsg time.Time

// Monitor steps a session once per tick and charts one metric over time.
type Monitor struct {
	name    string
	session *kernel.Session
	params  kernel.Params
	scene   sim.Scene
	metrics []metrics.Metric
	history map[string][]float64
	graphed int
	frame   int
	t       float64
	running bool
	err     error
}

// NewMonitor seeds the session with scene and prepares the default metrics.
// The monitor owns the session from here on.
func NewMonitor(name string, session *kernel.Session, params kernel.Params, scene sim.Scene) *Monitor {
	m := &Monitor{
		name:    name,
		session: session,
		params:  params,
		scene:   scene,
		metrics: metrics.Default(),
		history: make(map[string][]float64),
		running: true,
	}
	m.seed()
	return m
}

func (m *Monitor) seed() {
	if m.scene != nil {
		m.scene.Seed(m.session.Current(), m.params)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Monitor) Init() tea.Cmd {
	return tick()
}

func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.graphed = (m.graphed + 1) % len(m.metrics)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Monitor) step() {
	if err := m.session.Step(context.Background(), m.params, float32(m.t)); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.frame++
	m.t += float64(m.params.Dt)

	g := m.session.Current()
	for _, mt := range m.metrics {
		mt.Observe(g, m.t)
		h := append(m.history[mt.Name()], mt.Value())
		if len(h) > historyCapacity {
			h = h[1:]
		}
		m.history[mt.Name()] = h
	}
}

func (m *Monitor) reset() {
	if err := m.session.Reset(); err != nil {
		m.err = err
		return
	}
	m.seed()
	m.frame = 0
	m.t = 0
	m.err = nil
	for _, mt := range m.metrics {
		mt.Reset()
	}
	m.history = make(map[string][]float64)
}

func (m *Monitor) View() string {
	var b strings.Builder

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusError.Render("ERROR: " + m.err.Error())
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	header := fmt.Sprintf("%s  %s  frame %d  t=%.2f  %s",
		Title.Render("firesim"), m.name, m.frame, m.t, status)
	b.WriteString(header + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("grid %s  backend %s", m.session.Extent(), m.session.Backend().Name())) + "\n\n")

	rows := make([]string, 0, len(m.metrics))
	for i, mt := range m.metrics {
		label := MetricLabel.Render(mt.Name())
		if i == m.graphed {
			label = ActiveMetric.Render(mt.Name())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, MetricValue.Render(fmt.Sprintf("%.5g", mt.Value()))))
	}
	b.WriteString(Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n")

	name := m.metrics[m.graphed].Name()
	if h := m.history[name]; len(h) > 1 {
		plot := asciigraph.Plot(h,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(name),
		)
		b.WriteString(Graph.Render(plot) + "\n")
	}

	b.WriteString(KeyHint.Render("space pause  r reset  tab metric  q quit"))
	return b.String()
}

// Frame reports the number of frames stepped since the last reset.
func (m *Monitor) Frame() int { return m.frame }

// Run starts the monitor full-screen and closes the session on exit.
func Run(ctx context.Context, m *Monitor) error {
	defer m.session.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
