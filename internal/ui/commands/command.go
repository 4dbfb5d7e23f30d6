package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"userdir/internal/eventbus"
	"userdir/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State *state.AppState
	Bus   eventbus.EventBus
}

// FetchCommand asks the directory service for a fresh batch of users
type FetchCommand struct {
	ctx    *CommandContext
	reason string
}

// NewFetchCommand creates a new fetch command
func NewFetchCommand(ctx *CommandContext, reason string) *FetchCommand {
	return &FetchCommand{
		ctx:    ctx,
		reason: reason,
	}
}

// Execute marks the list as loading and publishes the request
func (c *FetchCommand) Execute() tea.Cmd {
	c.ctx.State.Loading = true
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.FetchRequestedEvent{
			Reason: c.reason,
		})
	}
	return nil
}

// ApplyFilterCommand narrows the visible list
type ApplyFilterCommand struct {
	ctx   *CommandContext
	query string
}

// NewApplyFilterCommand creates a new filter command
func NewApplyFilterCommand(ctx *CommandContext, query string) *ApplyFilterCommand {
	return &ApplyFilterCommand{
		ctx:   ctx,
		query: query,
	}
}

// Execute applies the filter to the fetched list
func (c *ApplyFilterCommand) Execute() tea.Cmd {
	c.ctx.State.ApplyFilter(c.query)
	return nil
}
