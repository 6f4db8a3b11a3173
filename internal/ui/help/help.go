package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section groups key bindings under a title
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
		{"m", "Show or hide columns"},
	}
}

// GetNavigationKeys returns table navigation key bindings
func GetNavigationKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"←/h", "Previous column"},
		{"→/l", "Next column"},
		{"Ctrl+U", "Page up"},
		{"Ctrl+D", "Page down"},
		{"g / G", "First / last row"},
	}
}

// GetFilterKeys returns filter header key bindings
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"Tab / /", "Edit filter of active column"},
		{"Tab, Shift+Tab", "Next / previous filter"},
		{"Space", "Cycle checkbox any → yes → no"},
		{"Enter", "Apply filter now"},
		{"Esc", "Back to table"},
		{"Ctrl+R", "Clear all filters"},
		{"*, ?, [...]", "Wildcards; \\ makes the next character literal"},
	}
}

// GetDataKeys returns data key bindings
func GetDataKeys() []KeyBinding {
	return []KeyBinding{
		{"s", "Sort ascending"},
		{"Shift+S", "Sort descending"},
		{"0", "Clear sort"},
		{"c", "Copy cell"},
		{"Shift+C", "Copy row"},
		{"e", "Export visible rows"},
	}
}

// Sections returns every help section in display order
func Sections() []Section {
	return []Section{
		{"Global", GetGlobalKeys()},
		{"Navigation", GetNavigationKeys()},
		{"Filters", GetFilterKeys()},
		{"Data", GetDataKeys()},
	}
}

// Render creates the help view
func Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("filtergrid - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range Sections() {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, kb := range section.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
