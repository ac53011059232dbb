package device

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"soundstage/internal/engine"
)

// ErrStream is an optional capability a Stream may implement to report
// mid-life errors back to the Supervisor. Backends that can't detect
// failure out-of-band (like Noop) simply don't implement it.
type ErrStream interface {
	Stream
	Err() <-chan error
}

// Supervisor owns the dedicated backend thread that opens the output
// stream, watches it for mid-life errors, and on failure rebuilds by
// trying the preference-sorted configs again from the top, after a
// rate-limited, jittered pause.
type Supervisor struct {
	dev  Device
	pull PullFunc

	mu     sync.Mutex
	stream Stream
	cfg    Config

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSupervisor starts the backend thread immediately against dev,
// pulling samples from pull.
func NewSupervisor(dev Device, pull PullFunc) (*Supervisor, error) {
	s := &Supervisor{dev: dev, pull: pull, done: make(chan struct{})}
	if err := s.open(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
	return s, nil
}

// Config reports the currently active stream configuration.
func (s *Supervisor) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Close stops the backend thread and closes the current stream.
func (s *Supervisor) Close() error {
	s.cancel()
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		return s.stream.Close()
	}
	return nil
}

// open tries every enumerated config, highest preference first, until
// one opens successfully.
func (s *Supervisor) open() error {
	configs, err := s.dev.Enumerate()
	if err != nil {
		return engine.NewError(engine.ErrDeviceQuery, err)
	}
	SortByPreference(configs)

	var lastErr error
	for _, cfg := range configs {
		stream, err := s.dev.Open(cfg, s.pull)
		if err != nil {
			lastErr = err
			continue
		}
		s.mu.Lock()
		s.stream = stream
		s.cfg = cfg
		s.mu.Unlock()
		return nil
	}
	if lastErr == nil {
		lastErr = errNoConfig
	}
	return engine.NewError(engine.ErrNoConfig, lastErr)
}

// run watches the active stream for mid-life errors (when the backend
// supports reporting them) and rebuilds on failure. Before each rebuild
// it waits for a token from a limiter allowing one rebuild per 50ms, then
// sleeps a random 0-20ms; the delay does not grow between rebuilds. Each
// error triggers one reopen attempt: if that attempt fails, the failure
// is logged and the supervisor, now holding no stream, only waits for
// Close.
func (s *Supervisor) run(ctx context.Context) {
	defer close(s.done)

	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)

	for {
		s.mu.Lock()
		errStream, ok := s.stream.(ErrStream)
		s.mu.Unlock()
		if !ok {
			// This backend can't report mid-life errors out-of-band;
			// there is nothing for the supervisor thread to watch.
			<-ctx.Done()
			return
		}

		select {
		case <-ctx.Done():
			return
		case err := <-errStream.Err():
			log.Printf("device: stream error, rebuilding: %v", err)
			s.mu.Lock()
			s.stream.Close()
			s.stream = nil
			s.mu.Unlock()

			engine.IncDeviceRebuild()
			backoff := time.Duration(rand.Int63n(int64(20 * time.Millisecond)))
			if werr := limiter.Wait(ctx); werr != nil {
				return
			}
			time.Sleep(backoff)

			if err := s.open(); err != nil {
				log.Printf("device: rebuild failed: %v", err)
			}
		}
	}
}

var errNoConfig = errConfigExhausted{}

type errConfigExhausted struct{}

func (errConfigExhausted) Error() string { return "no supported device configuration" }
