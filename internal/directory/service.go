// Package directory loads user batches on request and reports the
// outcome on the event bus.
package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"userdir/internal/eventbus"
	"userdir/internal/randomuser"
	"userdir/internal/source"
)

// Service answers FetchRequested events. A request arriving while a fetch
// is running cancels that fetch; only the latest request publishes a result.
type Service struct {
	bus     eventbus.EventBus
	src     source.Source
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	ctx    context.Context
	wg     sync.WaitGroup
}

// NewService creates the service and subscribes it to the bus
func NewService(ctx context.Context, bus eventbus.EventBus, src source.Source, timeout time.Duration, logger zerolog.Logger) *Service {
	s := &Service{
		bus:     bus,
		src:     src,
		timeout: timeout,
		log:     logger.With().Str("component", "directory").Logger(),
		ctx:     ctx,
	}
	bus.Subscribe(eventbus.EventFetchRequested, func(e eventbus.DomainEvent) {
		if req, ok := e.(eventbus.FetchRequestedEvent); ok {
			s.Fetch(req.Reason)
		}
	})
	return s
}

// Fetch starts a fetch in the background, superseding any running one
func (s *Service) Fetch(reason string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(s.ctx, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(s.ctx)
	}
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, gen, reason)
	}()
}

// Wait blocks until no fetch is running
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

func (s *Service) run(ctx context.Context, gen uint64, reason string) {
	name := s.src.Name()
	s.log.Info().Str("source", name).Str("reason", reason).Msg("fetching users")
	s.bus.Publish(eventbus.FetchStartedEvent{Source: name})

	users, err := s.src.Fetch(ctx)

	if !s.current(gen) {
		s.log.Debug().Str("source", name).Msg("discarding superseded fetch")
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) && s.ctx.Err() != nil {
			return
		}
		apiErr := randomuser.IsAPIError(err)
		s.log.Error().Err(err).Bool("api_error", apiErr).Str("source", name).Msg("fetch failed")
		s.bus.Publish(eventbus.FetchFailedEvent{Source: name, Err: err, APIError: apiErr})
		return
	}

	s.log.Info().Str("source", name).Int("users", len(users)).Msg("users fetched")
	s.bus.Publish(eventbus.UsersFetchedEvent{Source: name, Users: users})
}
