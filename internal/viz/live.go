// Package viz renders a run live in the terminal: the metronome grid
// with hysteresis-smoothed cluster colors, the order parameter history,
// and a HUD of the coupling ramp and lock state.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/cluster"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/engine"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/palette"
)

const historyCapacity = 240

type TickMsg time.Time

// Model drives one engine run frame by frame under the bubbletea loop.
type Model struct {
	cfg *config.Config
	eng *engine.Engine

	frame        engine.Frame
	orderHistory []float64
	colorStyles  []lipgloss.Style
	running      bool
	done         bool
	hasFrame     bool
}

func NewModel(cfg *config.Config) (Model, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return Model{}, err
	}

	hexes := cfg.Palette
	if len(hexes) == 0 {
		hexes = palette.Default()
	}
	colors, err := palette.Parse(hexes)
	if err != nil {
		return Model{}, err
	}
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}

	return Model{
		cfg:          cfg,
		eng:          eng,
		orderHistory: make([]float64, 0, historyCapacity),
		colorStyles:  styles,
		running:      true,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			// Rebuild the engine; the lock latch only resets with the run.
			eng, err := engine.New(m.cfg)
			if err == nil {
				m.eng = eng
				m.orderHistory = m.orderHistory[:0]
				m.done = false
				m.hasFrame = false
				m.running = true
			}
		}
	case TickMsg:
		if m.running && !m.done {
			m.frame = m.eng.StepFrame()
			m.hasFrame = true
			m.orderHistory = append(m.orderHistory, m.frame.Order)
			if len(m.orderHistory) > historyCapacity {
				m.orderHistory = m.orderHistory[1:]
			}
			if m.frame.Index+1 >= m.cfg.TotalFrames() {
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("KURAMOTO METRONOMES") + "\n")

	status := "RUNNING"
	if m.done {
		status = "FINISHED"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if m.hasFrame {
		s.WriteString(tableStyle.Render(m.renderGrid()) + "\n")

		if len(m.orderHistory) > 1 {
			chart := asciigraph.Plot(m.orderHistory,
				asciigraph.Height(5),
				asciigraph.Width(60),
				asciigraph.Caption("order parameter r"),
			)
			s.WriteString(graphStyle.Render(chart) + "\n")
		}

		s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs / %.0fs", m.frame.Time, m.cfg.Duration)) + "\n")
		s.WriteString(labelStyle.Render("Order r") + valueStyle.Render(fmt.Sprintf("%.3f", m.frame.Order)) + "\n")
		s.WriteString(labelStyle.Render("K(t)") + valueStyle.Render(fmt.Sprintf("%.2f", m.frame.Coupling)) + "\n")
		s.WriteString(labelStyle.Render("Clusters") + valueStyle.Render(fmt.Sprintf("%d", m.frame.Clusters)) + "\n")
		if m.frame.Locked {
			s.WriteString(labelStyle.Render("State") + lockedStyle.Render("FULLY LOCKED") + "\n")
		} else {
			s.WriteString(labelStyle.Render("State") + valueStyle.Render("unlocked") + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause  R:Restart  Q:Quit"))
	return s.String()
}

// renderGrid draws one character per oscillator in the table's
// row-major order: dim circles before start, neutral bobs without a
// cluster color, palette-colored bobs otherwise.
func (m Model) renderGrid() string {
	cols := (m.cfg.N + m.cfg.Rows - 1) / m.cfg.Rows
	var s strings.Builder
	for i := 0; i < m.cfg.N; i++ {
		if i > 0 && i%cols == 0 {
			s.WriteString("\n")
		}
		switch {
		case !m.frame.Active[i]:
			s.WriteString(inactiveStyle.Render("○ "))
		case m.frame.Colors[i] == cluster.Neutral:
			s.WriteString(neutralStyle.Render("● "))
		default:
			s.WriteString(m.colorStyles[m.frame.Colors[i]%len(m.colorStyles)].Render("● "))
		}
	}
	return s.String()
}
