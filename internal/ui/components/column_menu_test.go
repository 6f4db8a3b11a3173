package components

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

func TestColumnMenu_HideAndShow(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"A", "B", "C"})

	if !m.Toggle(1) {
		t.Fatal("Expected hiding column 1 to succeed")
	}
	if m.IsShown(1) {
		t.Error("Expected column 1 to be hidden")
	}
	if got := m.VisibleColumns(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Expected visible [0 2], got %v", got)
	}
	if !m.Toggle(1) || !m.IsShown(1) {
		t.Error("Expected showing column 1 to succeed")
	}
}

func TestColumnMenu_LastVisibleColumnStays(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"A", "B"})

	m.Toggle(0)
	if m.Toggle(1) {
		t.Error("Expected hiding the last visible column to be refused")
	}
	if !m.IsShown(1) {
		t.Error("Expected refused toggle to be reset to shown")
	}
	if m.HiddenCount() != 1 {
		t.Errorf("Expected 1 hidden column, got %d", m.HiddenCount())
	}
	if !strings.Contains(zone.Scan(m.View()), "At least one column") {
		t.Error("Expected notice in view")
	}
}

func TestColumnMenu_SingleColumn(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"Only"})

	if m.Toggle(0) {
		t.Error("Expected the only column to stay visible")
	}
	if !m.IsShown(0) {
		t.Error("Expected column 0 to be shown")
	}
}

func TestColumnMenu_UnknownColumnIgnored(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"A", "B"})

	if m.Toggle(-1) || m.Toggle(2) {
		t.Error("Expected unknown columns to be ignored")
	}
	if m.HiddenCount() != 0 {
		t.Errorf("Expected no hidden columns, got %d", m.HiddenCount())
	}
}

func TestColumnMenu_ShowAll(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"A", "B", "C"})
	m.Toggle(0)
	m.Toggle(2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.HiddenCount() != 0 {
		t.Errorf("Expected every column shown, got %d hidden", m.HiddenCount())
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 || msgs[0] != (ColumnVisibilityChangedMsg{Column: -1, Shown: true}) {
		t.Errorf("Expected show-all message, got %v", msgs)
	}
}

func TestColumnMenu_KeyboardToggle(t *testing.T) {
	m := NewColumnMenu(theme.DefaultTheme())
	m.SetColumns([]string{"A", "B"})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	msgs := runCmd(cmd)
	if len(msgs) != 1 || msgs[0] != (ColumnVisibilityChangedMsg{Column: 1, Shown: false}) {
		t.Errorf("Expected column 1 hidden message, got %v", msgs)
	}

	// Refused toggle sends nothing
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Expected no message when hiding the last visible column")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if msgs := runCmd(cmd); len(msgs) != 1 || msgs[0] != (CloseColumnMenuMsg{}) {
		t.Errorf("Expected close message, got %v", msgs)
	}
}
