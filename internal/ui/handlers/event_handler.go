package handlers

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"userdir/internal/eventbus"
	"userdir/internal/randomuser"
	"userdir/internal/ui/state"
)

// ClearStatusMsg asks the model to clear the status bar
type ClearStatusMsg struct{}

// StatusTTL is how long informational status messages stay visible
const StatusTTL = 3 * time.Second

// EventHandler handles domain events and updates state
type EventHandler struct {
	state         *state.AppState
	onListChanged func()
	log           zerolog.Logger
}

// NewEventHandler creates a new event handler. onListChanged runs after
// the visible list was replaced.
func NewEventHandler(appState *state.AppState, onListChanged func(), logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		state:         appState,
		onListChanged: onListChanged,
		log:           logger,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.FetchStartedEvent:
		h.state.Loading = true
		h.state.Source = e.Source

	case eventbus.UsersFetchedEvent:
		h.state.Loading = false
		h.state.Source = e.Source
		h.state.SetUsers(e.Users)
		if h.onListChanged != nil {
			h.onListChanged()
		}
		h.state.SetStatus(fmt.Sprintf("Loaded %d users", len(e.Users)), false)
		return tea.Tick(StatusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{} })

	case eventbus.FetchFailedEvent:
		// The list is left as it was in both cases
		h.state.Loading = false
		h.log.Error().Err(e.Err).Str("source", e.Source).Bool("api_error", e.APIError).Msg("fetch failed")
		if e.APIError {
			text := e.Err.Error()
			var apiErr *randomuser.APIError
			if errors.As(e.Err, &apiErr) {
				text = apiErr.Message
			}
			h.state.ShowFetchError(text)
			return nil
		}
		h.state.SetStatus(fmt.Sprintf("Fetch failed: %v", e.Err), true)

	case eventbus.SourceChangedEvent:
		h.state.SetStatus("Source file changed, reloading", false)
	}

	return nil
}
