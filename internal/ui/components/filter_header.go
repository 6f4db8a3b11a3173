package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/filtergrid/internal/debounce"
	"github.com/rebeliceyang/filtergrid/internal/models"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

// ZoneFilterPrefix prefixes the bubblezone id of each filter control
const ZoneFilterPrefix = "filter-"

// StringFilterChangedMsg commits the text of a column's filter field
type StringFilterChangedMsg struct {
	Column int
	Text   string
}

// StateFilterChangedMsg commits the state of a column's tri-state control
type StateFilterChangedMsg struct {
	Column int
	State  models.CheckState
}

// FilterTimerMsg is delivered when the debounce delay armed with Gen elapses
type FilterTimerMsg struct {
	Gen uint64
}

type controlKind int

const (
	textControl controlKind = iota
	checkControl
)

// filterControl is the per-column slot: a text field or a tri-state box
type filterControl struct {
	kind  controlKind
	input textinput.Model
	state models.CheckState
}

// FilterHeader renders the column titles with one filter control per column
// and turns edits into debounced filter messages
type FilterHeader struct {
	Theme theme.Theme

	titles       []string
	checkColumns map[int]bool
	controls     []filterControl
	focused      int

	sortColumn int
	sortDesc   bool

	debouncer *debounce.Debouncer
	tick      func(d time.Duration, gen uint64) tea.Cmd
	now       func() time.Time
}

// NewFilterHeader creates a header whose edits settle after delay
func NewFilterHeader(th theme.Theme, delay time.Duration) *FilterHeader {
	return &FilterHeader{
		Theme:        th,
		checkColumns: map[int]bool{},
		focused:      -1,
		sortColumn:   -1,
		debouncer:    debounce.New(delay),
		tick: func(d time.Duration, gen uint64) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg {
				return FilterTimerMsg{Gen: gen}
			})
		},
		now: time.Now,
	}
}

// SetCheckColumns declares which columns get a tri-state control.
// It must be called before SetColumns.
func (h *FilterHeader) SetCheckColumns(columns []int) {
	h.checkColumns = make(map[int]bool, len(columns))
	for _, c := range columns {
		h.checkColumns[c] = true
	}
}

// SetColumns creates one control per column title
func (h *FilterHeader) SetColumns(titles []string) {
	h.debouncer.Cancel()
	h.titles = titles
	h.focused = -1
	h.controls = make([]filterControl, len(titles))
	for i := range titles {
		if h.checkColumns[i] {
			h.controls[i] = filterControl{kind: checkControl, state: models.Indeterminate}
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "Filter"
		ti.CharLimit = 256
		h.controls[i] = filterControl{kind: textControl, input: ti}
	}
}

// ColumnCount returns the number of controls
func (h *FilterHeader) ColumnCount() int {
	return len(h.controls)
}

// IsCheckColumn reports whether column has a tri-state control
func (h *FilterHeader) IsCheckColumn(column int) bool {
	return column >= 0 && column < len(h.controls) && h.controls[column].kind == checkControl
}

// Text returns the current text of a column's filter field
func (h *FilterHeader) Text(column int) string {
	if column < 0 || column >= len(h.controls) || h.controls[column].kind != textControl {
		return ""
	}
	return h.controls[column].input.Value()
}

// State returns the current state of a column's tri-state control
func (h *FilterHeader) State(column int) models.CheckState {
	if !h.IsCheckColumn(column) {
		return models.Indeterminate
	}
	return h.controls[column].state
}

// Focused returns the column whose control has focus, or -1
func (h *FilterHeader) Focused() int {
	return h.focused
}

// Focus moves key input to column's control
func (h *FilterHeader) Focus(column int) tea.Cmd {
	if column < 0 || column >= len(h.controls) {
		return nil
	}
	h.Blur()
	h.focused = column
	if h.controls[column].kind == textControl {
		return h.controls[column].input.Focus()
	}
	return nil
}

// Blur removes focus from every control
func (h *FilterHeader) Blur() {
	if h.focused >= 0 && h.focused < len(h.controls) {
		h.controls[h.focused].input.Blur()
	}
	h.focused = -1
}

// SetSortIndicator marks the sorted column in the title row; -1 clears it
func (h *FilterHeader) SetSortIndicator(column int, desc bool) {
	h.sortColumn = column
	h.sortDesc = desc
}

// SetText replaces a filter field's text as if the user typed it
func (h *FilterHeader) SetText(column int, text string) tea.Cmd {
	if column < 0 || column >= len(h.controls) || h.controls[column].kind != textControl {
		return nil
	}
	if h.controls[column].input.Value() == text {
		return nil
	}
	h.controls[column].input.SetValue(text)
	return h.changed(column)
}

// ToggleState advances a tri-state control
func (h *FilterHeader) ToggleState(column int) tea.Cmd {
	if !h.IsCheckColumn(column) {
		return nil
	}
	c := &h.controls[column]
	c.state = c.state.Next()
	return h.changed(column)
}

// Flush commits the pending edit without waiting for the delay
func (h *FilterHeader) Flush() tea.Cmd {
	if column, ok := h.debouncer.Flush(); ok {
		return h.commit(column)
	}
	return nil
}

// Clear resets every control without emitting filter messages
func (h *FilterHeader) Clear() {
	h.debouncer.Cancel()
	for i := range h.controls {
		h.controls[i].input.SetValue("")
		h.controls[i].state = models.Indeterminate
	}
}

// changed records an edit of column. A different pending column is
// committed at once; column itself waits for the debounce delay.
func (h *FilterHeader) changed(column int) tea.Cmd {
	var cmds []tea.Cmd
	flushed, ok, gen := h.debouncer.Touch(column, h.now())
	if ok {
		cmds = append(cmds, h.commit(flushed))
	}
	cmds = append(cmds, h.tick(h.debouncer.Delay(), gen))
	return tea.Batch(cmds...)
}

// commit snapshots the control's current value into a filter message
func (h *FilterHeader) commit(column int) tea.Cmd {
	if column < 0 || column >= len(h.controls) {
		return nil
	}
	c := h.controls[column]
	if c.kind == checkControl {
		state := c.state
		return func() tea.Msg {
			return StateFilterChangedMsg{Column: column, State: state}
		}
	}
	text := c.input.Value()
	return func() tea.Msg {
		return StringFilterChangedMsg{Column: column, Text: text}
	}
}

// Update handles debounce timers and keys for the focused control
func (h *FilterHeader) Update(msg tea.Msg) (*FilterHeader, tea.Cmd) {
	switch msg := msg.(type) {
	case FilterTimerMsg:
		if column, ok := h.debouncer.Expire(msg.Gen); ok {
			return h, h.commit(column)
		}
		return h, nil

	case tea.KeyMsg:
		if h.focused < 0 {
			return h, nil
		}
		c := &h.controls[h.focused]
		if c.kind == checkControl {
			switch msg.String() {
			case " ", "space", "enter", "x":
				return h, h.ToggleState(h.focused)
			}
			return h, nil
		}

		before := c.input.Value()
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		if c.input.Value() != before {
			return h, tea.Batch(cmd, h.changed(h.focused))
		}
		return h, cmd
	}

	// Cursor blink and other input internals
	if h.focused >= 0 && h.controls[h.focused].kind == textControl {
		var cmd tea.Cmd
		h.controls[h.focused].input, cmd = h.controls[h.focused].input.Update(msg)
		return h, cmd
	}
	return h, nil
}

// HandleMouseClick focuses the clicked control; a click on a tri-state
// control also toggles it. Returns whether the click hit a control.
func (h *FilterHeader) HandleMouseClick(msg tea.MouseMsg) (bool, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false, nil
	}
	for i := range h.controls {
		if !zone.Get(filterZoneID(i)).InBounds(msg) {
			continue
		}
		cmd := h.Focus(i)
		if h.controls[i].kind == checkControl {
			return true, tea.Batch(cmd, h.ToggleState(i))
		}
		return true, cmd
	}
	return false, nil
}

func filterZoneID(column int) string {
	return fmt.Sprintf("%s%d", ZoneFilterPrefix, column)
}

// Height is the number of lines rendered by View
func (h *FilterHeader) Height() int {
	return 2
}

// View renders the title row and the control row for the given columns.
// widths is indexed like columns; active highlights one column's title.
func (h *FilterHeader) View(columns []int, widths []int, active int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.Theme.TableHeader).
		Background(h.Theme.TableHeaderBg)
	activeStyle := titleStyle.Foreground(h.Theme.TableColumnFocus)

	titles := make([]string, 0, len(columns))
	controls := make([]string, 0, len(columns))
	for i, col := range columns {
		if col < 0 || col >= len(h.controls) {
			continue
		}
		width := widths[i]

		title := h.titles[col]
		if col == h.sortColumn {
			if h.sortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		style := titleStyle
		if col == active {
			style = activeStyle
		}
		titles = append(titles, style.Render(FitCell(title, width)))

		cell := lipgloss.NewStyle().Width(width).MaxWidth(width).Render(h.renderControl(col, width))
		controls = append(controls, zone.Mark(filterZoneID(col), cell))
	}

	sep := lipgloss.NewStyle().Foreground(h.Theme.Border).Render(" │ ")
	return " " + strings.Join(titles, sep) + " \n " + strings.Join(controls, sep) + " "
}

func (h *FilterHeader) renderControl(column, width int) string {
	c := &h.controls[column]
	focused := column == h.focused

	if c.kind == checkControl {
		var label string
		var color lipgloss.Color
		switch c.state {
		case models.Checked:
			label, color = "[x] yes", h.Theme.FilterChecked
		case models.Unchecked:
			label, color = "[ ] no", h.Theme.FilterUnchecked
		default:
			label, color = "[?] any", h.Theme.Muted
		}
		style := lipgloss.NewStyle().Foreground(color)
		if focused {
			style = style.Bold(true).Underline(true)
		}
		return style.Render(FitCell(label, width))
	}

	c.input.Width = width - 1
	if c.input.Width < 1 {
		c.input.Width = 1
	}
	switch {
	case focused:
		c.input.TextStyle = lipgloss.NewStyle().Foreground(h.Theme.FilterFocused)
	case c.input.Value() != "":
		c.input.TextStyle = lipgloss.NewStyle().Foreground(h.Theme.FilterActive).Underline(true)
	default:
		c.input.TextStyle = lipgloss.NewStyle().Foreground(h.Theme.FilterText)
	}
	c.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(h.Theme.Muted).Italic(true)
	return c.input.View()
}
