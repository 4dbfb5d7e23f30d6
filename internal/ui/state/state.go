package state

import (
	"userdir/internal/domain"
	"userdir/internal/ui/logic"
)

// Preview describes the photo popup currently on screen
type Preview struct {
	Row       int    // index into Filtered
	URL       string // picture being shown
	X, Y      int    // anchor cell
	FromMouse bool   // opened by hovering rather than by the preview key
}

// AppState contains all the application state
type AppState struct {
	// User data
	Users    []domain.User // last successful fetch
	Filtered []domain.User // Users narrowed by FilterQuery, what the table shows

	// Fetch state
	Loading bool
	Source  string // name of the data source

	// Filter state
	FilterQuery  string // applied filter
	PendingQuery string // typed but not yet applied
	Filtering    bool   // filter input has focus

	// Error state
	ShowError    bool
	ErrorMessage string

	// UI state
	StatusMessage string // status bar message
	StatusIsError bool
	ShowHelp      bool
	ShowInfo      bool
	InfoContent   string
	HoveredRow    int // row whose picture cell is under the pointer, -1 if none
	Preview       *Preview
	SpinnerFrame  int
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Users:      make([]domain.User, 0),
		Filtered:   make([]domain.User, 0),
		HoveredRow: -1,
	}
}

// SetUsers replaces the fetched list and re-applies the current filter
func (s *AppState) SetUsers(users []domain.User) {
	if users == nil {
		users = make([]domain.User, 0)
	}
	s.Users = users
	s.Filtered = logic.FilterByName(s.Users, s.FilterQuery)
	s.ClearPreview()
}

// ApplyFilter narrows the list to users whose name contains query
func (s *AppState) ApplyFilter(query string) {
	s.FilterQuery = logic.NormalizeQuery(query)
	s.PendingQuery = ""
	s.Filtered = logic.FilterByName(s.Users, query)
	s.ClearPreview()
}

// IsFiltered reports whether a non-empty filter is applied
func (s *AppState) IsFiltered() bool {
	return s.FilterQuery != ""
}

// UserAt returns the filtered user at index i
func (s *AppState) UserAt(i int) (domain.User, bool) {
	if i < 0 || i >= len(s.Filtered) {
		return domain.User{}, false
	}
	return s.Filtered[i], true
}

// ShowFetchError opens the modal error popup
func (s *AppState) ShowFetchError(msg string) {
	s.ShowError = true
	s.ErrorMessage = msg
}

// DismissError closes the modal error popup
func (s *AppState) DismissError() {
	s.ShowError = false
	s.ErrorMessage = ""
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

// ClearPreview hides the photo popup and the hover highlight
func (s *AppState) ClearPreview() {
	s.Preview = nil
	s.HoveredRow = -1
}
