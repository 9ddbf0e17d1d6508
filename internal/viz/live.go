package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/windkit/airtraj/internal/traj"
)

const (
	mapWidth  = 60
	mapHeight = 18
	graphRows = 8
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model animates a particle stepping through a velocity field.
type Model struct {
	field    traj.Field
	extent   *traj.Extent
	source   string
	start    traj.Position
	pos      traj.Position
	step     int
	maxSteps int
	trail    []traj.Position
	exits    int
	running  bool
	done     bool
	err      error
	fps      int
}

// NewModel prepares a live view advancing the particle from start for at most
// maxSteps forward Euler steps.
func NewModel(field traj.Field, source string, start traj.Position, maxSteps, fps int) Model {
	m := Model{
		field:    field,
		source:   source,
		start:    start,
		pos:      start,
		maxSteps: maxSteps,
		trail:    []traj.Position{start},
		running:  true,
		fps:      fps,
	}
	if b, ok := field.(traj.Bounded); ok {
		e := b.Bounds()
		m.extent = &e
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pos = m.start
			m.step = 0
			m.trail = []traj.Position{m.start}
			m.exits = 0
			m.done = false
			m.err = nil
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance performs one forward Euler step, mirroring the integrator: sample
// at the current position, add v to lat and u to lon.
func (m *Model) advance() {
	u, v, err := m.field.Sample(m.pos.Lat, m.pos.Lon)
	if err != nil {
		m.err = err
		m.done = true
		return
	}
	m.pos = traj.Position{Lat: m.pos.Lat + v, Lon: m.pos.Lon + u}
	m.step++
	m.trail = append(m.trail, m.pos)
	if m.extent != nil && !m.extent.Contains(m.pos.Lat, m.pos.Lon) {
		m.exits++
	}
	if m.step >= m.maxSteps {
		m.done = true
	}
}

func (m Model) View() string {
	left := canvasStyle.Render(TrackMap(m.trail, mapWidth, mapHeight))

	status := "running"
	switch {
	case m.err != nil:
		status = warnStyle.Render(fmt.Sprintf("failed: %v", m.err))
	case m.done:
		status = "finished"
	case !m.running:
		status = "paused"
	}

	stats := headerStyle.Render("airtraj live") + "\n" +
		statRow("source", m.source) + "\n" +
		statRow("step", fmt.Sprintf("%d / %d", m.step, m.maxSteps)) + "\n" +
		statRow("lat", fmt.Sprintf("%.4f", m.pos.Lat)) + "\n" +
		statRow("lon", fmt.Sprintf("%.4f", m.pos.Lon)) + "\n" +
		statRow("exits", fmt.Sprintf("%d", m.exits)) + "\n" +
		statRow("status", status)

	if len(m.trail) > 1 {
		lats := make([]float64, len(m.trail))
		for i, p := range m.trail {
			lats[i] = p.Lat
		}
		stats += "\n" + graphStyle.Render(asciigraph.Plot(lats,
			asciigraph.Height(graphRows),
			asciigraph.Width(34),
			asciigraph.Caption("lat vs step"),
		))
	}

	help := helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(stats)) + "\n" + help
}

func statRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
