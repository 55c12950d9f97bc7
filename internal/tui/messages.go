package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadFunc runs the report pipeline and returns the rendered document.
// It must honor ctx cancellation.
type LoadFunc func(ctx context.Context) (string, error)

// Message types for async operations
type (
	// ReportLoadedMsg carries the rendered report once the pipeline
	// finishes.
	ReportLoadedMsg struct {
		RequestID string
		Report    string
		Error     error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadReportCmd runs the pipeline asynchronously.
func loadReportCmd(ctx context.Context, requestID string, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		report, err := load(ctx)
		return ReportLoadedMsg{
			RequestID: requestID,
			Report:    report,
			Error:     err,
		}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
