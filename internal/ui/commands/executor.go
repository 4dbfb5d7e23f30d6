package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"userdir/internal/eventbus"
	"userdir/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State: state,
			Bus:   bus,
		},
	}
}

// ExecuteFetch creates and executes a fetch command
func (e *Executor) ExecuteFetch(reason string) tea.Cmd {
	cmd := NewFetchCommand(e.ctx, reason)
	return cmd.Execute()
}

// ExecuteApplyFilter creates and executes a filter command
func (e *Executor) ExecuteApplyFilter(query string) tea.Cmd {
	cmd := NewApplyFilterCommand(e.ctx, query)
	return cmd.Execute()
}
