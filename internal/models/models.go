package models

// AppState holds the application state
type AppState struct {
	Width   int
	Height  int
	Focus   FocusTarget
	View    ViewMode
	Loading bool
}

// FocusTarget identifies what receives key input
type FocusTarget int

const (
	FocusTable FocusTarget = iota
	FocusFilter
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	ColumnMenuMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:  80,
		Height: 24,
		Focus:  FocusTable,
		View:   NormalMode,
	}
}
