package models

// Cell is one value of the grid: its display text and its check state.
// Cells of plain text columns stay Indeterminate.
type Cell struct {
	Text  string
	State CheckState
}

// Table is the grid data shown by the application
type Table struct {
	Name         string
	Columns      []string
	Rows         [][]Cell
	CheckColumns map[int]bool
}

// NewTable creates an empty table with the given column titles
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:         name,
		Columns:      columns,
		Rows:         [][]Cell{},
		CheckColumns: map[int]bool{},
	}
}

// AppendTextRow appends a row of display strings
func (t *Table) AppendTextRow(values []string) {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Cell{Text: v}
	}
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of source rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Cell returns the cell at (row, column). Out of range positions yield an
// empty Indeterminate cell.
func (t *Table) Cell(row, column int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	r := t.Rows[row]
	if column < 0 || column >= len(r) {
		return Cell{}
	}
	return r[column]
}

// IsCheckable reports whether column holds tri-state values
func (t *Table) IsCheckable(column int) bool {
	return t.CheckColumns[column]
}

// CheckableColumns returns the checkable column indices in ascending order
func (t *Table) CheckableColumns() []int {
	var cols []int
	for i := range t.Columns {
		if t.CheckColumns[i] {
			cols = append(cols, i)
		}
	}
	return cols
}

// MarkCheckable flags columns as tri-state and derives each cell's state
// from its text
func (t *Table) MarkCheckable(columns ...int) {
	if t.CheckColumns == nil {
		t.CheckColumns = map[int]bool{}
	}
	for _, col := range columns {
		if col < 0 || col >= len(t.Columns) {
			continue
		}
		t.CheckColumns[col] = true
		for _, row := range t.Rows {
			if col < len(row) {
				row[col].State = ParseCheckState(row[col].Text)
			}
		}
	}
}
