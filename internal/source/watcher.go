package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"userdir/internal/debounce"
	"userdir/internal/eventbus"
)

// DefaultSettleDelay is how long a file must stay untouched before a
// change is reported; editors usually write in several steps
const DefaultSettleDelay = 200 * time.Millisecond

// Watcher reports changes of a source file on the bus, one
// SourceChanged/FetchRequested pair per burst of writes
type Watcher struct {
	path  string
	bus   eventbus.EventBus
	delay time.Duration
	log   zerolog.Logger
}

// NewWatcher creates a watcher for path
func NewWatcher(path string, bus eventbus.EventBus, delay time.Duration, logger zerolog.Logger) *Watcher {
	return &Watcher{
		path:  path,
		bus:   bus,
		delay: delay,
		log:   logger.With().Str("component", "watcher").Str("path", path).Logger(),
	}
}

// Run watches until ctx is cancelled. The parent directory is watched
// rather than the file so that atomic rename-over saves are seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", filepath.Dir(abs), err)
	}

	notify := debounce.New(w.delay, func(name string) {
		w.log.Info().Str("file", name).Msg("source file changed")
		w.bus.Publish(eventbus.SourceChangedEvent{Path: name})
		w.bus.Publish(eventbus.FetchRequestedEvent{Reason: "source file changed"})
	})
	defer notify.Stop()

	w.log.Debug().Msg("watching")
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				notify.Invoke(abs)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}
