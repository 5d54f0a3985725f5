package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/blokeley/montecarlo/internal/mc"
)

const liveHistoryCapacity = 600

var (
	liveHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	liveLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	liveValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	liveGraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	liveHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type liveTickMsg time.Time

// LiveModel steps a run one batch per frame and charts the shrinking
// standard error.
type LiveModel struct {
	run       *mc.Run
	name      string
	fps       int
	running   bool
	done      bool
	err       error
	errHist   []float64
	meanHist  []float64
	startedAt time.Time
}

func NewLiveModel(run *mc.Run, name string, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		run:       run,
		name:      name,
		fps:       fps,
		running:   true,
		errHist:   make([]float64, 0, liveHistoryCapacity),
		meanHist:  make([]float64, 0, liveHistoryCapacity),
		startedAt: time.Now(),
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return liveTickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return m.tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case liveTickMsg:
		if m.running && !m.done {
			done, err := m.run.Step(context.Background())
			if err != nil {
				m.err = err
				m.done = true
				return m, m.tick()
			}
			snap := m.run.Snapshot()
			if snap.Count > 1 {
				m.errHist = append(m.errHist, snap.StdErr)
				m.meanHist = append(m.meanHist, snap.Mean)
				if len(m.errHist) > liveHistoryCapacity {
					m.errHist = m.errHist[1:]
					m.meanHist = m.meanHist[1:]
				}
			}
			m.done = done
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	snap := m.run.Snapshot()

	var s strings.Builder
	s.WriteString(liveHeaderStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "SAMPLING"
	switch {
	case m.err != nil:
		status = fmt.Sprintf("FAILED: %v", m.err)
	case m.done && snap.Converged:
		status = "CONVERGED"
	case m.done:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.errHist) > 1 {
		chart := asciigraph.Plot(m.errHist,
			asciigraph.Height(6),
			asciigraph.Width(44),
			asciigraph.Caption("std error"))
		s.WriteString(liveGraphStyle.Render(chart) + "\n")
	}

	s.WriteString(liveLabelStyle.Render("Samples") + liveValueStyle.Render(fmt.Sprintf("%d", snap.Count)) + "\n")
	s.WriteString(liveLabelStyle.Render("Batches") + liveValueStyle.Render(fmt.Sprintf("%d", snap.Batches)) + "\n")
	s.WriteString(liveLabelStyle.Render("Mean") + liveValueStyle.Render(fmt.Sprintf("%.6f", snap.Mean)) + "\n")
	s.WriteString(liveLabelStyle.Render("Std error") + liveValueStyle.Render(fmt.Sprintf("%.6f", snap.StdErr)) + "\n")
	s.WriteString(liveLabelStyle.Render("Elapsed") + liveValueStyle.Render(time.Since(m.startedAt).Truncate(time.Millisecond).String()) + "\n")

	s.WriteString(liveHelpStyle.Render("SP:Pause  Q:Quit"))
	return s.String()
}

// RunLive drives a run under the live TUI until it finishes or the
// user quits.
func RunLive(run *mc.Run, name string, fps int) error {
	p := tea.NewProgram(NewLiveModel(run, name, fps))
	_, err := p.Run()
	return err
}
