package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Table colors
		TableHeader:      lipgloss.Color("105"),
		TableHeaderBg:    lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("25"),
		TableColumnFocus: lipgloss.Color("220"),

		// Filter controls
		FilterText:      lipgloss.Color("252"),
		FilterActive:    lipgloss.Color("214"),
		FilterFocused:   lipgloss.Color("75"),
		FilterChecked:   lipgloss.Color("42"),
		FilterUnchecked: lipgloss.Color("203"),
	}
}
