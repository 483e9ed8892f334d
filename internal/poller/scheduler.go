// internal/poller/scheduler.go
package poller

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/tamzrod/sensor-adapter/internal/monitoring"
)

// State is the scheduler lifecycle position.
type State int

const (
	Idle State = iota
	Running
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNotIdle is returned by Run on a scheduler that was already started or stopped.
var ErrNotIdle = errors.New("poller: scheduler not idle")

// Scheduler drives the poller until shutdown and owns the device release.
//
//	Idle --Run--> Running --ctx done / Shutdown--> Draining --> Stopped
//
// The in-flight cycle is allowed to finish; nothing from it is persisted.
type Scheduler struct {
	poller *Poller
	sink   Sink
	dev    io.Closer

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	stopped chan struct{}

	releaseOnce sync.Once
	releaseErr  error
}

// NewScheduler wires a poller to its sink. dev is closed exactly once on shutdown.
func NewScheduler(p *Poller, sink Sink, dev io.Closer) *Scheduler {
	return &Scheduler{
		poller:  p,
		sink:    sink,
		dev:     dev,
		stopped: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the scheduler reaches Stopped.
func (s *Scheduler) Done() <-chan struct{} { return s.stopped }

// Run blocks until ctx is cancelled or Shutdown is called, then releases
// the device and returns the close error, if any.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = Running
	s.mu.Unlock()
	defer cancel()

	monitoring.Logf("scheduler started (device=%s interval=%s)", s.poller.cfg.Device, s.poller.cfg.Interval)

	out := make(chan Cycle)
	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		s.poller.Run(ctx, out)
	}()

	for {
		select {
		case <-ctx.Done():
			s.setState(Draining)
			<-pollerDone // the device must not be closed under an in-flight exchange
			err := s.release()
			s.setState(Stopped)
			close(s.stopped)
			monitoring.Logf("scheduler stopped (device=%s)", s.poller.cfg.Device)
			return err

		case c := <-out:
			s.deliver(c)
		}
	}
}

// Shutdown stops scheduling new cycles and releases the device.
// Safe to call any number of times, from any goroutine, before or after Run.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	if s.state == Idle {
		s.state = Stopped
		close(s.stopped)
		s.mu.Unlock()
		return s.release()
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-s.stopped
	return s.release()
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// release closes the device once; later calls return the first result.
func (s *Scheduler) release() error {
	s.releaseOnce.Do(func() {
		if s.dev != nil {
			s.releaseErr = s.dev.Close()
		}
	})
	return s.releaseErr
}

// deliver logs per-cycle errors and hands the cycle to the sink.
// Nothing here may stop the loop.
func (s *Scheduler) deliver(c Cycle) {
	dev := s.poller.cfg.Device

	if c.SafetyErr != nil {
		monitoring.Logf("cycle error (device=%s): %v", dev, c.SafetyErr)
	}
	if c.AuxErr != nil {
		monitoring.Logf("cycle error (subsystems): %v", c.AuxErr)
	}
	if s.sink == nil {
		return
	}
	if err := s.sink.Write(c); err != nil {
		monitoring.Logf("writer error (device=%s): %v", dev, err)
	}
}
