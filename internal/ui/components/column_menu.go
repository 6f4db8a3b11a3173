package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

// ZoneColumnMenuPrefix prefixes the bubblezone id of each menu entry
const ZoneColumnMenuPrefix = "colmenu-"

// ColumnVisibilityChangedMsg is sent after a column was shown or hidden
type ColumnVisibilityChangedMsg struct {
	Column int
	Shown  bool
}

// CloseColumnMenuMsg is sent when the column menu should close
type CloseColumnMenuMsg struct{}

// ColumnMenu lists every column with a shown/hidden toggle. The last
// visible column can never be hidden.
type ColumnMenu struct {
	Theme  theme.Theme
	Width  int
	titles []string
	shown  []bool
	cursor int
	notice string
}

// NewColumnMenu creates an empty column menu
func NewColumnMenu(th theme.Theme) *ColumnMenu {
	return &ColumnMenu{Theme: th, Width: 40}
}

// SetColumns resets the menu with every column shown
func (m *ColumnMenu) SetColumns(titles []string) {
	m.titles = make([]string, len(titles))
	for i, t := range titles {
		m.titles[i] = strings.Join(strings.Fields(t), " ")
	}
	m.shown = make([]bool, len(titles))
	for i := range m.shown {
		m.shown[i] = true
	}
	m.cursor = 0
	m.notice = ""
}

// IsShown reports whether column is visible
func (m *ColumnMenu) IsShown(column int) bool {
	return column >= 0 && column < len(m.shown) && m.shown[column]
}

// HiddenCount returns the number of hidden columns
func (m *ColumnMenu) HiddenCount() int {
	count := 0
	for _, s := range m.shown {
		if !s {
			count++
		}
	}
	return count
}

// VisibleColumns returns the shown column indices in order
func (m *ColumnMenu) VisibleColumns() []int {
	cols := make([]int, 0, len(m.shown))
	for i, s := range m.shown {
		if s {
			cols = append(cols, i)
		}
	}
	return cols
}

// Toggle flips column's visibility and reports whether it changed.
// Unknown columns are ignored. Hiding the last visible column is refused
// and its toggle is put back to shown.
func (m *ColumnMenu) Toggle(column int) bool {
	if column < 0 || column >= len(m.shown) {
		return false
	}
	m.notice = ""

	m.shown[column] = !m.shown[column]
	if m.shown[column] {
		return true
	}
	if len(m.shown)-m.HiddenCount() > 0 {
		return true
	}
	m.shown[column] = true
	m.notice = "At least one column must stay visible"
	return false
}

// ShowAll makes every column visible
func (m *ColumnMenu) ShowAll() {
	for i := range m.shown {
		m.shown[i] = true
	}
	m.notice = ""
}

func (m *ColumnMenu) toggleCmd(column int) tea.Cmd {
	if !m.Toggle(column) {
		return nil
	}
	shown := m.shown[column]
	return func() tea.Msg {
		return ColumnVisibilityChangedMsg{Column: column, Shown: shown}
	}
}

// Update handles keyboard input
func (m *ColumnMenu) Update(msg tea.KeyMsg) (*ColumnMenu, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case " ", "space", "enter", "x":
		return m, m.toggleCmd(m.cursor)
	case "a":
		m.ShowAll()
		return m, func() tea.Msg {
			return ColumnVisibilityChangedMsg{Column: -1, Shown: true}
		}
	case "esc", "m", "q":
		return m, func() tea.Msg {
			return CloseColumnMenuMsg{}
		}
	}
	return m, nil
}

// HandleMouseClick toggles the clicked entry
func (m *ColumnMenu) HandleMouseClick(msg tea.MouseMsg) (bool, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false, nil
	}
	for i := range m.shown {
		if zone.Get(fmt.Sprintf("%s%d", ZoneColumnMenuPrefix, i)).InBounds(msg) {
			m.cursor = i
			return true, m.toggleCmd(i)
		}
	}
	return false, nil
}

// View renders the menu
func (m *ColumnMenu) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(m.Theme.Foreground).
		Background(m.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Show or hide columns"))

	for i, title := range m.titles {
		box := "[ ]"
		if m.shown[i] {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.cursor {
			style = style.Background(m.Theme.Selection).Foreground(m.Theme.Foreground)
		}
		line := style.Render(fmt.Sprintf("%s %s", box, title))
		sections = append(sections, zone.Mark(fmt.Sprintf("%s%d", ZoneColumnMenuPrefix, i), line))
	}

	if m.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(m.Theme.Warning).
			Padding(0, 1).
			Render(m.notice))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(m.Theme.Muted).
		Italic(true).
		Padding(0, 1)
	sections = append(sections, "", helpStyle.Render("Space: toggle │ a: show all │ Esc: close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.BorderFocused).
		Width(m.Width).
		Render(strings.Join(sections, "\n"))
}
