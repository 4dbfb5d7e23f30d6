package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchRequested EventType = "FetchRequested"
	EventFetchStarted   EventType = "FetchStarted"
	EventUsersFetched   EventType = "UsersFetched"
	EventFetchFailed    EventType = "FetchFailed"
	EventSourceChanged  EventType = "SourceChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchRequestedEvent asks the directory service to (re)load the user list
type FetchRequestedEvent struct {
	Reason string
}

func (e FetchRequestedEvent) Type() EventType { return EventFetchRequested }

// FetchStartedEvent is emitted when a fetch actually begins
type FetchStartedEvent struct {
	Source string
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// UsersFetchedEvent carries a freshly fetched batch
type UsersFetchedEvent struct {
	Source string
	Users  []User
}

func (e UsersFetchedEvent) Type() EventType { return EventUsersFetched }

// FetchFailedEvent is emitted when a fetch fails. APIError is true when the
// API answered with an error envelope rather than failing in transport.
type FetchFailedEvent struct {
	Source   string
	Err      error
	APIError bool
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// SourceChangedEvent is emitted when a watched source file changed on disk
type SourceChangedEvent struct {
	Path string
}

func (e SourceChangedEvent) Type() EventType { return EventSourceChanged }
