package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/filtergrid/internal/models"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

// widthSampleRows bounds how many rows are inspected to size columns
const widthSampleRows = 1000

// RowSource is the filtered, sorted view of the table rows
type RowSource interface {
	RowCount() int
	TotalRows() int
	Row(row int) []models.Cell
}

// TableView displays filtered rows with virtual scrolling under a FilterHeader
type TableView struct {
	Header  *FilterHeader
	Source  RowSource
	Columns []string
	Theme   theme.Theme
	Width   int
	Height  int

	// Virtual scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int

	// Column state
	VisibleColumns []int
	ActiveColumn   int
	LeftColumn     int // index into VisibleColumns of the first rendered column
	ColumnWidths   []int
	MaxCellWidth   int
	checkColumns   map[int]bool

	// Extra text appended to the status line
	StatusExtra string
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme, header *FilterHeader) *TableView {
	return &TableView{
		Header:       header,
		Theme:        th,
		Columns:      []string{},
		ColumnWidths: []int{},
		MaxCellWidth: 40,
		checkColumns: map[int]bool{},
	}
}

// SetData attaches a row source and resets scrolling and column state
func (tv *TableView) SetData(columns []string, src RowSource, checkColumns []int) {
	tv.Columns = columns
	tv.Source = src
	tv.checkColumns = make(map[int]bool, len(checkColumns))
	for _, c := range checkColumns {
		tv.checkColumns[c] = true
	}
	tv.VisibleColumns = make([]int, len(columns))
	for i := range columns {
		tv.VisibleColumns[i] = i
	}
	tv.TopRow = 0
	tv.SelectedRow = 0
	tv.ActiveColumn = 0
	tv.LeftColumn = 0
	tv.calculateColumnWidths()
}

// SetVisibleColumns changes which columns are rendered
func (tv *TableView) SetVisibleColumns(columns []int) {
	tv.VisibleColumns = columns
	if tv.visibleIndex(tv.ActiveColumn) < 0 && len(columns) > 0 {
		tv.ActiveColumn = columns[0]
	}
	tv.LeftColumn = 0
}

// calculateColumnWidths sizes columns from their titles and a sample of rows
func (tv *TableView) calculateColumnWidths() {
	tv.ColumnWidths = make([]int, len(tv.Columns))

	for i, col := range tv.Columns {
		// Room for the sort indicator
		tv.ColumnWidths[i] = runewidth.StringWidth(col) + 2
	}

	if tv.Source != nil {
		n := tv.Source.RowCount()
		if n > widthSampleRows {
			n = widthSampleRows
		}
		for r := 0; r < n; r++ {
			for i, cell := range tv.Source.Row(r) {
				if i >= len(tv.ColumnWidths) || tv.checkColumns[i] {
					continue
				}
				if w := runewidth.StringWidth(cell.Text); w > tv.ColumnWidths[i] {
					tv.ColumnWidths[i] = w
				}
			}
		}
	}

	maxWidth := tv.MaxCellWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	for i := range tv.ColumnWidths {
		if tv.ColumnWidths[i] > maxWidth {
			tv.ColumnWidths[i] = maxWidth
		}
		// Fits a filter field or "[?] any"
		if tv.ColumnWidths[i] < 8 {
			tv.ColumnWidths[i] = 8
		}
	}
}

func (tv *TableView) visibleIndex(column int) int {
	for i, c := range tv.VisibleColumns {
		if c == column {
			return i
		}
	}
	return -1
}

// renderedColumns returns the visible columns that fit the width, starting
// at LeftColumn and always including the active column
func (tv *TableView) renderedColumns() ([]int, []int) {
	if len(tv.VisibleColumns) == 0 {
		return nil, nil
	}

	active := tv.visibleIndex(tv.ActiveColumn)
	if active >= 0 && active < tv.LeftColumn {
		tv.LeftColumn = active
	}

	fit := func(start int) ([]int, []int) {
		var cols, widths []int
		used := 1
		for i := start; i < len(tv.VisibleColumns); i++ {
			col := tv.VisibleColumns[i]
			w := tv.ColumnWidths[col]
			if len(cols) > 0 && tv.Width > 0 && used+w+3 > tv.Width {
				break
			}
			cols = append(cols, col)
			widths = append(widths, w)
			used += w + 3
		}
		return cols, widths
	}

	cols, widths := fit(tv.LeftColumn)
	for active >= 0 && tv.LeftColumn < active && tv.visibleIndexIn(cols, tv.ActiveColumn) < 0 {
		tv.LeftColumn++
		cols, widths = fit(tv.LeftColumn)
	}
	return cols, widths
}

func (tv *TableView) visibleIndexIn(cols []int, column int) int {
	for i, c := range cols {
		if c == column {
			return i
		}
	}
	return -1
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.Columns) == 0 || tv.Source == nil {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render("No data")
	}

	cols, widths := tv.renderedColumns()

	var b strings.Builder
	b.WriteString(tv.Header.View(cols, widths, tv.ActiveColumn))
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator(widths))
	b.WriteString("\n")

	// Header lines + separator + status
	tv.VisibleRows = tv.Height - tv.Header.Height() - 2
	if tv.VisibleRows < 1 {
		tv.VisibleRows = 1
	}

	rowCount := tv.Source.RowCount()
	endRow := tv.TopRow + tv.VisibleRows
	if endRow > rowCount {
		endRow = rowCount
	}

	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(tv.Source.Row(i), cols, widths, i == tv.SelectedRow))
		b.WriteString("\n")
	}
	for i := endRow - tv.TopRow; i < tv.VisibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString(tv.renderStatus())
	return b.String()
}

func (tv *TableView) renderSeparator(widths []int) string {
	var parts []string
	for _, width := range widths {
		parts = append(parts, strings.Repeat("─", width))
	}
	separatorStyle := lipgloss.NewStyle().Foreground(tv.Theme.Border)
	return separatorStyle.Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(row []models.Cell, cols, widths []int, selected bool) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		var cell models.Cell
		if col < len(row) {
			cell = row[col]
		}
		if tv.checkColumns[col] {
			parts[i] = FitCell(checkGlyph(cell.State), widths[i])
		} else {
			parts[i] = FitCell(cell.Text, widths[i])
		}
	}

	line := " " + strings.Join(parts, " │ ") + " "
	if selected {
		return lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Render(line)
	}
	return line
}

func checkGlyph(s models.CheckState) string {
	switch s {
	case models.Checked:
		return "[x]"
	case models.Unchecked:
		return "[ ]"
	default:
		return "[-]"
	}
}

func (tv *TableView) renderStatus() string {
	visible := tv.Source.RowCount()
	total := tv.Source.TotalRows()

	var showing string
	if visible == 0 {
		showing = fmt.Sprintf(" 󰈙 0 of %d rows", total)
	} else {
		endRow := tv.TopRow + tv.VisibleRows
		if endRow > visible {
			endRow = visible
		}
		showing = fmt.Sprintf(" 󰈙 %d-%d of %d rows", tv.TopRow+1, endRow, visible)
		if visible != total {
			showing += fmt.Sprintf(" (filtered from %d)", total)
		}
	}
	if tv.StatusExtra != "" {
		showing += "  " + tv.StatusExtra
	}

	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(showing)
}

// FitCell truncates or pads s to exactly width terminal cells
func FitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// ClampSelection keeps the selection inside the current row count
func (tv *TableView) ClampSelection() {
	n := 0
	if tv.Source != nil {
		n = tv.Source.RowCount()
	}
	if tv.SelectedRow >= n {
		tv.SelectedRow = n - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.TopRow > tv.SelectedRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.TopRow+tv.VisibleRows > n {
		tv.TopRow = n - tv.VisibleRows
	}
	if tv.TopRow < 0 {
		tv.TopRow = 0
	}
}

// MoveSelection moves the selection up or down
func (tv *TableView) MoveSelection(delta int) {
	if tv.Source == nil {
		return
	}
	tv.SelectedRow += delta

	// Bounds checking
	if tv.SelectedRow >= tv.Source.RowCount() {
		tv.SelectedRow = tv.Source.RowCount() - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}

	// Adjust visible window if needed
	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// PageUp/PageDown
func (tv *TableView) PageUp() {
	tv.SelectedRow -= tv.VisibleRows
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	tv.TopRow = tv.SelectedRow
}

func (tv *TableView) PageDown() {
	if tv.Source == nil {
		return
	}
	n := tv.Source.RowCount()
	tv.SelectedRow += tv.VisibleRows
	if tv.SelectedRow >= n {
		tv.SelectedRow = n - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	tv.TopRow = tv.SelectedRow
	if tv.TopRow+tv.VisibleRows > n {
		tv.TopRow = n - tv.VisibleRows
		if tv.TopRow < 0 {
			tv.TopRow = 0
		}
	}
}

// MoveColumn moves the active column among the visible columns
func (tv *TableView) MoveColumn(delta int) {
	if len(tv.VisibleColumns) == 0 {
		return
	}
	i := tv.visibleIndex(tv.ActiveColumn)
	if i < 0 {
		i = 0
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(tv.VisibleColumns) {
		i = len(tv.VisibleColumns) - 1
	}
	tv.ActiveColumn = tv.VisibleColumns[i]
}

// SelectedCell returns the cell under the selection
func (tv *TableView) SelectedCell() (models.Cell, bool) {
	row := tv.SelectedRowCells()
	if row == nil || tv.ActiveColumn >= len(row) {
		return models.Cell{}, false
	}
	return row[tv.ActiveColumn], true
}

// SelectedRowCells returns the cells of the selected row
func (tv *TableView) SelectedRowCells() []models.Cell {
	if tv.Source == nil || tv.SelectedRow < 0 || tv.SelectedRow >= tv.Source.RowCount() {
		return nil
	}
	return tv.Source.Row(tv.SelectedRow)
}
