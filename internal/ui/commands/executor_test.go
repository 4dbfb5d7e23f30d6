package commands

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/domain"
	"userdir/internal/eventbus"
	"userdir/internal/ui/state"
)

func TestExecuteFetchPublishesRequest(t *testing.T) {
	bus := eventbus.New(zerolog.Nop())
	defer bus.Close()

	got := make(chan eventbus.FetchRequestedEvent, 1)
	bus.Subscribe(eventbus.EventFetchRequested, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.FetchRequestedEvent)
	})

	s := state.NewAppState()
	NewExecutor(s, bus).ExecuteFetch("manual refresh")
	assert.True(t, s.Loading)

	select {
	case e := <-got:
		assert.Equal(t, "manual refresh", e.Reason)
	case <-time.After(time.Second):
		t.Fatal("fetch request not published")
	}
}

func TestExecuteFetchWithoutBus(t *testing.T) {
	s := state.NewAppState()
	NewExecutor(s, nil).ExecuteFetch("startup")
	assert.True(t, s.Loading)
}

func TestExecuteApplyFilter(t *testing.T) {
	s := state.NewAppState()
	var a, b domain.User
	a.Name.First, a.Name.Last = "John", "Smith"
	b.Name.First, b.Name.Last = "Jane", "Doe"
	s.SetUsers([]domain.User{a, b})

	NewExecutor(s, nil).ExecuteApplyFilter("DOE")
	require.Len(t, s.Filtered, 1)
	assert.Equal(t, "Jane Doe", s.Filtered[0].FullName())
	assert.Equal(t, "doe", s.FilterQuery)
}
