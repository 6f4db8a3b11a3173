// Package filter implements the row filter proxy placed between the loaded
// table and the grid view. It keeps one criterion per column, decides which
// source rows are visible and in which order they are shown.
package filter

import (
	"regexp"
	"sort"
	"sync"

	"github.com/rebeliceyang/filtergrid/internal/models"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultParallelThreshold is the row count from which visibility is
// evaluated on several goroutines
const DefaultParallelThreshold = 20000

// SortOrder is the direction of the proxy sort
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Model filters and sorts the rows of a models.Table.
// It is safe for concurrent use.
type Model struct {
	mu       sync.RWMutex
	table    *models.Table
	criteria models.Criteria
	matchers map[int]*regexp.Regexp

	sortColumn int
	sortOrder  SortOrder
	collator   *collate.Collator

	visible           []int // proxy row -> source row
	parallelThreshold int
}

// Option configures a Model
type Option func(*Model)

// WithParallelThreshold sets the row count from which evaluation fans out.
// Zero or negative disables the fan-out.
func WithParallelThreshold(n int) Option {
	return func(m *Model) {
		m.parallelThreshold = n
	}
}

// WithLanguage sets the collation language used for sorting
func WithLanguage(tag language.Tag) Option {
	return func(m *Model) {
		m.collator = collate.New(tag, collate.IgnoreCase)
	}
}

// NewModel creates a model with no source and no criteria
func NewModel(opts ...Option) *Model {
	m := &Model{
		criteria:          models.Criteria{},
		matchers:          map[int]*regexp.Regexp{},
		sortColumn:        -1,
		collator:          collate.New(language.Und, collate.IgnoreCase),
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSource replaces the source table and re-evaluates every row.
// Existing criteria are kept.
func (m *Model) SetSource(t *models.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = t
	m.invalidateLocked()
}

// Source returns the source table
func (m *Model) Source() *models.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table
}

// UpdatePatternFilter sets the wildcard pattern of column. An empty pattern
// removes the column's criterion.
func (m *Model) UpdatePatternFilter(column int, pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.criteria.Set(column, models.PatternCriterion(pattern))
	delete(m.matchers, column)
	if pattern != "" {
		// A pattern that does not compile leaves the column unfiltered
		if re, err := CompileWildcard(pattern); err == nil {
			m.matchers[column] = re
		}
	}
	m.invalidateLocked()
}

// UpdateStateFilter sets the required check state of column.
// Indeterminate removes the column's criterion.
func (m *Model) UpdateStateFilter(column int, state models.CheckState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.criteria.Set(column, models.StateCriterion(state))
	delete(m.matchers, column)
	m.invalidateLocked()
}

// ClearFilters removes every criterion
func (m *Model) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.criteria = models.Criteria{}
	m.matchers = map[int]*regexp.Regexp{}
	m.invalidateLocked()
}

// Criteria returns a copy of the active criteria
func (m *Model) Criteria() models.Criteria {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.criteria.Clone()
}

// ActiveFilterCount returns the number of columns with a criterion
func (m *Model) ActiveFilterCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.criteria)
}

// IsRowVisible reports whether source row passes every active criterion
func (m *Model) IsRowVisible(row int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil || row < 0 || row >= m.table.RowCount() {
		return false
	}
	return m.acceptsRow(row)
}

// acceptsRow evaluates the criteria for a source row. Callers hold mu.
func (m *Model) acceptsRow(row int) bool {
	for column, c := range m.criteria {
		cell := m.table.Cell(row, column)
		switch c.Kind {
		case models.CriterionPattern:
			re, ok := m.matchers[column]
			if !ok {
				continue
			}
			if !re.MatchString(cell.Text) {
				return false
			}
		case models.CriterionState:
			if cell.State != c.State {
				return false
			}
		}
	}
	return true
}

// Invalidate re-evaluates visibility and ordering of every row
func (m *Model) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidateLocked()
}

func (m *Model) invalidateLocked() {
	if m.table == nil {
		m.visible = nil
		return
	}

	n := m.table.RowCount()
	if len(m.criteria) == 0 {
		m.visible = make([]int, n)
		for i := range m.visible {
			m.visible[i] = i
		}
		m.sortLocked()
		return
	}

	accepted := make([]bool, n)
	if m.parallelThreshold > 0 && n >= m.parallelThreshold {
		iter.ForEachIdx(accepted, func(i int, ok *bool) {
			*ok = m.acceptsRow(i)
		})
	} else {
		for i := range accepted {
			accepted[i] = m.acceptsRow(i)
		}
	}

	visible := make([]int, 0, n)
	for i, ok := range accepted {
		if ok {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.sortLocked()
}

// Sort orders the visible rows by column. A negative column restores the
// source order.
func (m *Model) Sort(column int, order SortOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sortColumn = column
	m.sortOrder = order
	if column < 0 {
		sort.Ints(m.visible)
		return
	}
	m.sortLocked()
}

// SortColumn returns the sorted column (-1 when unsorted) and the order
func (m *Model) SortColumn() (int, SortOrder) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortColumn, m.sortOrder
}

func (m *Model) sortLocked() {
	if m.sortColumn < 0 || m.table == nil {
		return
	}

	column := m.sortColumn
	checkable := m.table.IsCheckable(column)
	less := func(a, b int) bool {
		ca := m.table.Cell(m.visible[a], column)
		cb := m.table.Cell(m.visible[b], column)
		var cmp int
		if checkable {
			cmp = int(ca.State) - int(cb.State)
		} else {
			cmp = m.collator.CompareString(ca.Text, cb.Text)
		}
		if m.sortOrder == Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(m.visible, less)
}

// RowCount returns the number of visible rows
func (m *Model) RowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.visible)
}

// TotalRows returns the number of source rows
func (m *Model) TotalRows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil {
		return 0
	}
	return m.table.RowCount()
}

// SourceRow maps a visible row index to its source row, or -1
func (m *Model) SourceRow(row int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if row < 0 || row >= len(m.visible) {
		return -1
	}
	return m.visible[row]
}

// Row returns the cells of visible row index row
func (m *Model) Row(row int) []models.Cell {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil || row < 0 || row >= len(m.visible) {
		return nil
	}
	return m.table.Rows[m.visible[row]]
}
