package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/filtergrid/internal/config"
	"github.com/rebeliceyang/filtergrid/internal/export"
	"github.com/rebeliceyang/filtergrid/internal/filter"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
	"github.com/rebeliceyang/filtergrid/internal/source"
	"github.com/rebeliceyang/filtergrid/internal/ui/components"
	"github.com/rebeliceyang/filtergrid/internal/ui/help"
	"github.com/rebeliceyang/filtergrid/internal/ui/theme"
)

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	logger logging.Logger
	source source.Source

	model      *filter.Model
	header     *components.FilterHeader
	tableView  *components.TableView
	columnMenu *components.ColumnMenu
	panel      components.Panel

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	// One-line feedback shown in the bottom bar
	notice string

	writeClipboard func(string) error
}

// TableLoadedMsg is sent when the data source finished loading
type TableLoadedMsg struct {
	Table *models.Table
	Err   error
}

// New creates a new App instance with config
func New(cfg *config.Config, src source.Source, logger logging.Logger) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	header := components.NewFilterHeader(th, time.Duration(cfg.Filter.DebounceMs)*time.Millisecond)
	tableView := components.NewTableView(th, header)
	if cfg.Data.MaxCellDisplayLength > 0 {
		tableView.MaxCellWidth = cfg.Data.MaxCellDisplayLength
	}

	state := models.NewAppState()
	state.Loading = src != nil

	a := &App{
		state:          state,
		config:         cfg,
		theme:          th,
		logger:         logger,
		source:         src,
		model:          filter.NewModel(filter.WithParallelThreshold(cfg.Filter.ParallelThreshold)),
		header:         header,
		tableView:      tableView,
		columnMenu:     components.NewColumnMenu(th),
		errorOverlay:   components.NewErrorOverlay(th),
		writeClipboard: clipboard.WriteAll,
		panel: components.Panel{
			Title:   "Data",
			Theme:   th,
			Focused: true,
		},
	}
	a.updateDimensions()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.source == nil {
		return nil
	}
	return a.loadTable
}

// loadTable runs the data source
func (a *App) loadTable() tea.Msg {
	start := time.Now()
	tbl, err := source.Load(context.Background(), a.source, *a.config)
	if err != nil {
		a.logger.Error("failed to load table", "source", a.source.Name(), "error", err)
		return TableLoadedMsg{Err: err}
	}
	a.logger.Info("table loaded",
		"source", a.source.Name(),
		"rows", tbl.RowCount(),
		"columns", tbl.ColumnCount(),
		"duration", time.Since(start))
	return TableLoadedMsg{Table: tbl}
}

// SetTable shows tbl with fresh filter controls
func (a *App) SetTable(tbl *models.Table) {
	checkColumns := tbl.CheckableColumns()

	a.header.SetCheckColumns(checkColumns)
	a.header.SetColumns(tbl.Columns)
	a.header.SetSortIndicator(-1, false)
	a.model.ClearFilters()
	a.model.Sort(-1, filter.Ascending)
	a.model.SetSource(tbl)
	a.tableView.SetData(tbl.Columns, a.model, checkColumns)
	a.columnMenu.SetColumns(tbl.Columns)

	a.panel.Title = tbl.Name
	a.state.Loading = false
	a.state.Focus = models.FocusTable
	a.updateStatus()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TableLoadedMsg:
		a.state.Loading = false
		if msg.Err != nil {
			a.ShowError("Load Failed", fmt.Sprintf("Could not load data:\n\n%v", msg.Err))
			return a, nil
		}
		a.SetTable(msg.Table)
		return a, nil

	case components.StringFilterChangedMsg:
		a.logger.Debug("pattern filter changed", "column", msg.Column, "pattern", msg.Text)
		a.model.UpdatePatternFilter(msg.Column, msg.Text)
		a.afterFilterChange()
		return a, nil

	case components.StateFilterChangedMsg:
		a.logger.Debug("state filter changed", "column", msg.Column, "state", msg.State.String())
		a.model.UpdateStateFilter(msg.Column, msg.State)
		a.afterFilterChange()
		return a, nil

	case components.FilterTimerMsg:
		var cmd tea.Cmd
		a.header, cmd = a.header.Update(msg)
		return a, cmd

	case components.ColumnVisibilityChangedMsg:
		a.tableView.SetVisibleColumns(a.columnMenu.VisibleColumns())
		if f := a.header.Focused(); f >= 0 && !a.columnMenu.IsShown(f) {
			a.focusTable()
		}
		return a, nil

	case components.CloseColumnMenuMsg:
		a.state.View = models.NormalMode
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updateDimensions()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink for the focused filter field
	var cmd tea.Cmd
	a.header, cmd = a.header.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Handle error overlay dismissal first if visible
	if a.showError {
		switch key {
		case "esc", "enter":
			a.DismissError()
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state.View {
	case models.HelpMode:
		if key == "?" || key == "esc" || key == "q" {
			a.state.View = models.NormalMode
		}
		return a, nil
	case models.ColumnMenuMode:
		var cmd tea.Cmd
		a.columnMenu, cmd = a.columnMenu.Update(msg)
		return a, cmd
	}

	if a.state.Loading {
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.state.Focus == models.FocusFilter {
		return a.handleFilterKey(msg)
	}
	return a.handleTableKey(msg)
}

// handleFilterKey handles keys while a filter control has focus
func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.focusTable()
		return a, nil
	case "enter":
		if a.header.IsCheckColumn(a.header.Focused()) {
			break
		}
		cmd := a.header.Flush()
		a.focusTable()
		return a, cmd
	case "tab":
		return a, a.focusFilterStep(1)
	case "shift+tab":
		return a, a.focusFilterStep(-1)
	case "ctrl+r":
		a.clearFilters()
		return a, nil
	}

	var cmd tea.Cmd
	a.header, cmd = a.header.Update(msg)
	return a, cmd
}

// handleTableKey handles keys while the table has focus
func (a *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.notice = ""

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.state.View = models.HelpMode
	case "m":
		a.state.View = models.ColumnMenuMode
	case "tab", "/", "f":
		return a, a.focusFilter(a.tableView.ActiveColumn)
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
	case "left", "h":
		a.tableView.MoveColumn(-1)
	case "right", "l":
		a.tableView.MoveColumn(1)
	case "ctrl+u", "pgup":
		a.tableView.PageUp()
	case "ctrl+d", "pgdown":
		a.tableView.PageDown()
	case "g", "home":
		a.tableView.MoveSelection(-a.model.RowCount())
	case "G", "end":
		a.tableView.MoveSelection(a.model.RowCount())
	case "s":
		a.sortBy(a.tableView.ActiveColumn, filter.Ascending)
	case "S":
		a.sortBy(a.tableView.ActiveColumn, filter.Descending)
	case "0":
		a.sortBy(-1, filter.Ascending)
	case "c":
		a.copyCell()
	case "C":
		a.copyRow()
	case "e":
		a.exportRows()
	case "ctrl+r":
		a.clearFilters()
	case " ", "space":
		if a.header.IsCheckColumn(a.tableView.ActiveColumn) {
			return a, a.header.ToggleState(a.tableView.ActiveColumn)
		}
	}
	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showError || a.state.Loading {
		return a, nil
	}

	if a.state.View == models.ColumnMenuMode {
		_, cmd := a.columnMenu.HandleMouseClick(msg)
		return a, cmd
	}
	if a.state.View != models.NormalMode {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.tableView.MoveSelection(-3)
		return a, nil
	case tea.MouseButtonWheelDown:
		a.tableView.MoveSelection(3)
		return a, nil
	}

	if handled, cmd := a.header.HandleMouseClick(msg); handled {
		a.state.Focus = models.FocusFilter
		a.tableView.ActiveColumn = a.header.Focused()
		return a, cmd
	}
	return a, nil
}

// focusFilter gives key input to column's filter control
func (a *App) focusFilter(column int) tea.Cmd {
	if !a.columnMenu.IsShown(column) {
		return nil
	}
	a.state.Focus = models.FocusFilter
	a.tableView.ActiveColumn = column
	return a.header.Focus(column)
}

// focusFilterStep moves focus to the next or previous visible filter
func (a *App) focusFilterStep(delta int) tea.Cmd {
	cols := a.columnMenu.VisibleColumns()
	if len(cols) == 0 {
		return nil
	}
	i := 0
	for j, c := range cols {
		if c == a.header.Focused() {
			i = j
			break
		}
	}
	i = (i + delta + len(cols)) % len(cols)
	return a.focusFilter(cols[i])
}

func (a *App) focusTable() {
	a.header.Blur()
	a.state.Focus = models.FocusTable
}

func (a *App) clearFilters() {
	a.header.Clear()
	a.model.ClearFilters()
	a.afterFilterChange()
	a.logger.Debug("filters cleared")
}

func (a *App) afterFilterChange() {
	a.tableView.ClampSelection()
	a.updateStatus()
}

func (a *App) sortBy(column int, order filter.SortOrder) {
	a.model.Sort(column, order)
	a.header.SetSortIndicator(column, order == filter.Descending)
	a.tableView.ClampSelection()
	a.updateStatus()
}

func (a *App) updateStatus() {
	var parts []string
	if n := a.model.ActiveFilterCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filter(s) active", n))
	}
	if col, order := a.model.SortColumn(); col >= 0 && col < len(a.tableView.Columns) {
		dir := "asc"
		if order == filter.Descending {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sorted by %s %s", a.tableView.Columns[col], dir))
	}
	a.tableView.StatusExtra = strings.Join(parts, " · ")
}

func (a *App) copyCell() {
	cell, ok := a.tableView.SelectedCell()
	if !ok {
		return
	}
	text := cell.Text
	if a.header.IsCheckColumn(a.tableView.ActiveColumn) {
		text = cell.State.String()
	}
	a.copyText(text, "Copied cell")
}

func (a *App) copyRow() {
	row := a.tableView.SelectedRowCells()
	if row == nil {
		return
	}
	var values []string
	for _, col := range a.columnMenu.VisibleColumns() {
		if col < len(row) {
			values = append(values, row[col].Text)
		}
	}
	a.copyText(strings.Join(values, "\t"), "Copied row")
}

func (a *App) copyText(text, notice string) {
	if err := a.writeClipboard(text); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		a.notice = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	a.notice = notice
}

// exportRows writes the visible rows and columns to a file
func (a *App) exportRows() {
	path, err := export.Export(
		a.config.Export.Format,
		a.config.Export.Dir,
		a.panel.Title,
		a.tableView.Columns,
		a.columnMenu.VisibleColumns(),
		a.model,
		time.Now(),
	)
	if err != nil {
		a.logger.Error("export failed", "error", err)
		a.ShowError("Export Failed", err.Error())
		return
	}
	a.logger.Info("rows exported", "path", path, "rows", a.model.RowCount())
	a.notice = fmt.Sprintf("Exported %d rows to %s", a.model.RowCount(), path)
}

// View implements tea.Model
func (a *App) View() string {
	return zone.Scan(a.render())
}

func (a *App) render() string {
	// If error overlay is showing, render it centered on top of everything
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.state.View == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height)
	}

	if a.state.View == models.ColumnMenuMode {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.columnMenu.View(),
		)
	}

	return a.renderNormalView()
}

// renderNormalView renders the top bar, the table panel and the bottom bar
func (a *App) renderNormalView() string {
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("filtergrid", a.sourceName()))

	bottomLeft := "[tab] Filter | [m] Columns | [s] Sort | [?] Help | [q] Quit"
	if a.state.Focus == models.FocusFilter {
		bottomLeft = "[tab] Next filter | [space] Toggle | [esc] Table | [ctrl+r] Clear"
	}
	bottomRight := a.notice
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, bottomRight))

	if a.state.Loading {
		a.panel.Content = lipgloss.NewStyle().
			Foreground(a.theme.Muted).
			Render(fmt.Sprintf("Loading %s…", a.sourceName()))
	} else {
		a.tableView.Width = a.panel.Width
		a.tableView.Height = a.panel.InnerHeight()
		a.panel.Content = a.tableView.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		a.panel.View(),
		bottomBar,
	)
}

func (a *App) sourceName() string {
	if a.source == nil {
		return ""
	}
	return a.source.Name()
}

// updateDimensions calculates panel size based on window size
func (a *App) updateDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Top bar, bottom bar and the panel border
	height := a.state.Height - 4
	if height < 5 {
		height = 5
	}
	width := a.state.Width - 2
	if width < 20 {
		width = 20
	}
	a.panel.Width = width
	a.panel.Height = height
	a.columnMenu.Width = 40
	a.errorOverlay.Width = 60
	if a.state.Width < 64 {
		a.errorOverlay.Width = a.state.Width - 4
	}
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := a.state.Width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	// If content is too wide, drop the right side first
	if leftLen+rightLen > availableWidth {
		return components.FitCell(left, availableWidth)
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
