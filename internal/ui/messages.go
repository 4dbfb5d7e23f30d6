package ui

import (
	"time"

	"userdir/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// filterAppliedMsg is sent by the debounced filter once typing pauses
type filterAppliedMsg struct {
	Query string
}

// pictureLoadedMsg carries a rendered preview picture
type pictureLoadedMsg struct {
	url string
	art string
	err error
}

// pagerClosedMsg is sent when the record pager exits
type pagerClosedMsg struct {
	title   string
	content string
	err     error
}
