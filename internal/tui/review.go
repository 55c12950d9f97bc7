// Package tui presents the rendered report for review before anything is
// written: scroll through the sessions, accept to submit, or cancel.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

type model struct {
	load LoadFunc

	ctx            context.Context
	loadCtx        context.Context
	activeRequests map[string]context.CancelFunc
	loadRequestID  string

	spinner  *Spinner
	loading  bool
	report   string
	accepted bool
	err      error

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func initialModel(load LoadFunc) model {
	m := model{
		load:           load,
		ctx:            context.Background(),
		activeRequests: make(map[string]context.CancelFunc),
		spinner:        NewSpinner(),
		loading:        true,
	}
	// The load request is registered up front so Update can correlate
	// the result and cancellation can reach it.
	ctx, cancel := context.WithCancel(m.ctx)
	m.loadRequestID = uuid.New().String()
	m.activeRequests[m.loadRequestID] = cancel
	m.loadCtx = ctx
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, loadReportCmd(m.loadCtx, m.loadRequestID, m.load), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		if !m.loading {
			m.viewport.SetContent(m.report)
		}
		return m, nil

	case TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner.Next()
		return m, tickCmd()

	case ReportLoadedMsg:
		if cancel, ok := m.activeRequests[msg.RequestID]; ok {
			cancel()
			delete(m.activeRequests, msg.RequestID)
		}
		// A stale result from a cancelled request changes nothing.
		if msg.RequestID != m.loadRequestID {
			return m, nil
		}
		m.loading = false
		if msg.Error != nil {
			m.err = msg.Error
			return m, tea.Quit
		}
		m.report = msg.Report
		if m.ready {
			m.viewport.SetContent(m.report)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelAll()
			m.accepted = false
			return m, tea.Quit

		case "enter", "s":
			if !m.loading && m.err == nil {
				m.accepted = true
				return m, tea.Quit
			}
		}
	}

	if m.ready && !m.loading {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) cancelAll() {
	for id, cancel := range m.activeRequests {
		cancel()
		delete(m.activeRequests, id)
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.loading {
		return loadingView(m.width, m.height, m.spinner, "Collecting commits and huddles...")
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	body := m.report
	if strings.TrimSpace(body) == "" {
		body = "No tasks to report for this period."
	}
	m.viewport.SetContent(body)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	help := helpStyle.Render("↑/↓ scroll · enter/s submit · q cancel")
	return m.viewport.View() + "\n" + help
}

// Review runs the pipeline behind a loading screen and lets the operator
// read the rendered report. It returns the report and whether the operator
// accepted it.
func Review(load LoadFunc) (report string, accepted bool, err error) {
	p := tea.NewProgram(initialModel(load), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("TUI error: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return "", false, fmt.Errorf("unexpected final model type")
	}
	if m.err != nil {
		return "", false, m.err
	}
	return m.report, m.accepted, nil
}
