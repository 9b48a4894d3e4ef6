// Package tui renders a live view of a running simulation: current stack
// state on the left, a power sparkline on the right. It consumes the
// orchestrator's Observer hook; the engine itself knows nothing about
// terminals.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fuelsim/internal/sim"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type snapshot struct {
	state sim.State
	u     sim.Control
	t     float64
}

type doneMsg struct {
	result *sim.Result
	err    error
}

type tickMsg time.Time

type channelObserver struct {
	ch chan snapshot
}

func (o *channelObserver) OnStep(s sim.State, u sim.Control, t float64) {
	o.ch <- snapshot{state: s, u: u, t: t}
}

// Model streams one simulation run into the terminal.
type Model struct {
	chemistry string
	snaps     chan snapshot
	done      chan doneMsg

	latest  snapshot
	power   []float64
	result  *sim.Result
	err     error
	started bool
}

// Run blocks until the run finishes and the user quits.
func Run(plant sim.Dynamics, sched sim.Schedule, cp sim.ControlParams, p sim.Params, chemistry string) error {
	m := Model{
		chemistry: chemistry,
		snaps:     make(chan snapshot, 256),
		done:      make(chan doneMsg, 1),
		power:     make([]float64, 0, historyCapacity),
	}

	go func() {
		s := sim.New(plant, sched)
		s.AddObserver(&channelObserver{ch: m.snaps})
		res, err := s.Run(cp, p)
		close(m.snaps)
		m.done <- doneMsg{result: res, err: err}
	}()

	_, err := tea.NewProgram(m).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.drain()
		select {
		case d := <-m.done:
			m.result = d.result
			m.err = d.err
		default:
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) drain() {
	for {
		select {
		case s, ok := <-m.snaps:
			if !ok {
				return
			}
			m.latest = s
			m.started = true
			m.power = append(m.power, s.state.Power)
			if len(m.power) > historyCapacity {
				m.power = m.power[len(m.power)-historyCapacity:]
			}
		default:
			return
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("fuelsim — %s stack", m.chemistry)))
	b.WriteString("\n")

	stats := m.renderStats()
	graph := m.renderGraph()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats, graph))

	if m.err != nil {
		b.WriteString("\n" + helpStyle.Render("run failed: "+m.err.Error()))
	} else if m.result != nil {
		s := m.result.Summary
		b.WriteString("\n" + helpStyle.Render(fmt.Sprintf(
			"complete — avg power %.4f W · avg eff %.1f%% · stability %.3f · response %.0fs",
			s.AveragePower, s.AverageEfficiency, s.StabilityIndex, s.ResponseTime)))
	}

	b.WriteString("\n" + helpStyle.Render("q quit"))
	return b.String()
}

func (m Model) renderStats() string {
	if !m.started {
		return statsStyle.Render("waiting for first step...")
	}

	s := m.latest.state
	row := func(label string, format string, v float64) string {
		return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, v))
	}

	lines := []string{
		row("time", "%.1f s", m.latest.t),
		row("voltage", "%.4f V", s.Voltage),
		row("current", "%.3f A", s.Current),
		row("power", "%.4f W", s.Power),
		row("temperature", "%.1f °C", s.Temperature),
		row("pressure", "%.3f atm", s.Pressure),
		row("efficiency", "%.1f %%", s.Efficiency),
		row("fuel flow", "%.2f", m.latest.u.FuelFlow),
		row("cooling", "%.1f", m.latest.u.Cooling),
	}
	return statsStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderGraph() string {
	if len(m.power) < 2 {
		return graphStyle.Render("collecting samples...")
	}
	graph := asciigraph.Plot(m.power,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption("power (W)"),
	)
	return graphStyle.Render(graph)
}
