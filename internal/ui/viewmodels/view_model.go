package viewmodels

import (
	"userdir/internal/ui/state"
	"userdir/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state         *state.AppState
	width         int
	height        int
	offset        int
	selected      int
	inputText     string
	filterPending bool
	helpLine      string
	helpContent   string
	preview       *views.Preview
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState) *ViewModel {
	return &ViewModel{state: appState}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetViewport sets the first visible row and the selected row
func (vm *ViewModel) SetViewport(offset, selected int) {
	vm.offset = offset
	vm.selected = selected
}

// SetFilterInput sets the rendered filter input and whether a debounced
// filter is waiting to run
func (vm *ViewModel) SetFilterInput(text string, pending bool) {
	vm.inputText = text
	vm.filterPending = pending
}

// SetHelp sets the footer line and the help popup content
func (vm *ViewModel) SetHelp(line, content string) {
	vm.helpLine = line
	vm.helpContent = content
}

// SetPreview sets the rendered photo popup, nil to hide it
func (vm *ViewModel) SetPreview(p *views.Preview) {
	vm.preview = p
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	return views.ViewState{
		Width:         vm.width,
		Height:        vm.height,
		Users:         vm.state.Filtered,
		TotalUsers:    len(vm.state.Users),
		Offset:        vm.offset,
		SelectedIndex: vm.selected,
		HoveredRow:    vm.state.HoveredRow,
		Loading:       vm.state.Loading,
		SpinnerFrame:  vm.state.SpinnerFrame,
		Source:        vm.state.Source,
		FilterQuery:   vm.state.FilterQuery,
		FilterPending: vm.filterPending,
		Filtering:     vm.state.Filtering,
		FilterInput:   vm.inputText,
		StatusMessage: vm.state.StatusMessage,
		StatusIsError: vm.state.StatusIsError,
		HelpLine:      vm.helpLine,
		Preview:       vm.preview,
		ShowInfo:      vm.state.ShowInfo,
		InfoContent:   vm.state.InfoContent,
		ShowHelp:      vm.state.ShowHelp,
		HelpContent:   vm.helpContent,
		ShowError:     vm.state.ShowError,
		ErrorText:     vm.state.ErrorMessage,
	}
}
