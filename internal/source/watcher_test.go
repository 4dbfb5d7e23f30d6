package source

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/eventbus"
)

func TestWatcherCoalescesWrites(t *testing.T) {
	path := writeFile(t, twoUsers)
	other := filepath.Join(filepath.Dir(path), "other.json")

	bus := eventbus.New(zerolog.Nop())
	defer bus.Close()

	var requests atomic.Int32
	changed := make(chan string, 4)
	bus.Subscribe(eventbus.EventFetchRequested, func(eventbus.DomainEvent) { requests.Add(1) })
	bus.Subscribe(eventbus.EventSourceChanged, func(e eventbus.DomainEvent) {
		changed <- e.(eventbus.SourceChangedEvent).Path
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := NewWatcher(path, bus, 50*time.Millisecond, zerolog.Nop())
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(twoUsers), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), requests.Load())
	assert.Empty(t, changed)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	bus := eventbus.New(zerolog.Nop())
	defer bus.Close()

	w := NewWatcher(filepath.Join(t.TempDir(), "gone", "users.json"), bus, time.Millisecond, zerolog.Nop())
	err := w.Run(context.Background())
	assert.Error(t, err)
}
