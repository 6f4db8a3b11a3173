package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

// ErrorOverlay shows an error message in a centered box
type ErrorOverlay struct {
	Theme   theme.Theme
	Title   string
	Message string
	Width   int
}

// NewErrorOverlay creates an empty error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{Theme: th, Width: 60}
}

// SetError sets the title and message to display
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Error).
		Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted).
		Italic(true)

	content := titleStyle.Render("✗ "+e.Title) + "\n\n" +
		lipgloss.NewStyle().Width(e.Width-4).Render(e.Message) + "\n\n" +
		helpStyle.Render("Press Esc or Enter to dismiss")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Width(e.Width).
		Render(content)
}
