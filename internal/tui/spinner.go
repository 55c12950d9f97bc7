package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner represents a loading spinner
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		frame:  0,
	}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// loadingView renders the centered loading screen shown while the
// adapters run.
func loadingView(width, height int, spinner *Spinner, message string) string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	cancelHint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[ESC to cancel]")

	content := fmt.Sprintf("%s %s\n\n%s",
		spinnerStyle.Render(spinner.View()),
		messageStyle.Render(message),
		cancelHint)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
