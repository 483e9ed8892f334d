// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/sensor-adapter/internal/alarm"
	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/ioctl"
	"github.com/tamzrod/sensor-adapter/internal/monitoring"
	"github.com/tamzrod/sensor-adapter/internal/payload"
	"github.com/tamzrod/sensor-adapter/internal/status"
	"github.com/tamzrod/sensor-adapter/internal/subsystem"
)

// ---- fakes ----

type fakeChannel struct {
	mu       sync.Mutex
	reading  payload.Reading
	fail     bool
	panics   bool
	calls    int
	closes   int
	lastCode ioctl.Code
}

func (f *fakeChannel) Exchange(code ioctl.Code, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastCode = code
	if f.panics {
		panic("driver exploded")
	}
	if f.fail {
		// Scribble over the buffer: callers must not interpret it.
		for i := range buf {
			buf[i] = 0xAA
		}
		return &device.ExchangeError{Code: code, Err: syscall.EIO}
	}
	payload.EncodeInto(buf, f.reading)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeChannel) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

type fixedEnv struct{ r status.Environment }

func (e fixedEnv) Sample() status.Environment { return e.r }

type fixedAccess struct{ scan string }

func (a fixedAccess) Sample() status.Access { return status.Access{LastScan: a.scan} }

type panicEnv struct{}

func (panicEnv) Sample() status.Environment { panic("sensor bus down") }

type recordingSink struct {
	mu     sync.Mutex
	cycles []Cycle
	err    error
}

func (s *recordingSink) Write(c Cycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles = append(s.cycles, c)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cycles)
}

func muteLogs(t *testing.T) {
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = orig })
}

func newPoller(t *testing.T, ch device.Channel, env EnvironmentSampler, acc AccessSampler) *Poller {
	t.Helper()
	p, err := New(Config{Device: "fake", Interval: 5 * time.Millisecond}, ch, env, acc)
	require.NoError(t, err)
	return p
}

var env = fixedEnv{status.Environment{PM25: 25, NoiseDB: 60}}

// ---- PollOnce ----

func TestPollOnce_Success(t *testing.T) {
	ch := &fakeChannel{reading: payload.Reading{Timestamp: 99, DistanceMM: 120, StatusCode: 0}}
	p := newPoller(t, ch, env, fixedAccess{status.NoCard})

	c := p.PollOnce()
	require.NoError(t, c.SafetyErr)
	require.NoError(t, c.AuxErr)
	require.NotNil(t, c.Snapshot.Safety)

	assert.Equal(t, ioctl.GetData, ch.lastCode)
	assert.Equal(t, status.Safety{DeviceTimestamp: 99, DistanceMM: 120, Status: status.SafetyNormal}, *c.Snapshot.Safety)
	assert.Equal(t, env.r, c.Snapshot.Environment)
	assert.Equal(t, status.NoCard, c.Snapshot.Access.LastScan)
	assert.False(t, c.Snapshot.At.IsZero())
	assert.Equal(t, alarm.None, c.Alert.Kind)
}

func TestPollOnce_ExchangeFailureIsIsolated(t *testing.T) {
	ch := &fakeChannel{fail: true}
	p := newPoller(t, ch, env, fixedAccess{"CARD_0042"})

	c := p.PollOnce()
	assert.Nil(t, c.Snapshot.Safety)
	assert.True(t, errors.Is(c.SafetyErr, device.ErrExchangeFailed))
	assert.NoError(t, c.AuxErr)

	// Auxiliary readings still valid.
	assert.Equal(t, env.r, c.Snapshot.Environment)
	assert.Equal(t, "CARD_0042", c.Snapshot.Access.LastScan)
	assert.Equal(t, alarm.Alert{Kind: alarm.AccessScan, Card: "CARD_0042"}, c.Alert)
}

func TestPollOnce_ExchangePanicIsContained(t *testing.T) {
	ch := &fakeChannel{panics: true}
	p := newPoller(t, ch, env, fixedAccess{status.NoCard})

	var c Cycle
	require.NotPanics(t, func() { c = p.PollOnce() })
	assert.Nil(t, c.Snapshot.Safety)
	assert.Error(t, c.SafetyErr)
	assert.Equal(t, env.r, c.Snapshot.Environment)
}

func TestPollOnce_AuxPanicDoesNotDropSafety(t *testing.T) {
	ch := &fakeChannel{reading: payload.Reading{DistanceMM: 7, StatusCode: 1}}
	p := newPoller(t, ch, panicEnv{}, fixedAccess{"CARD_0001"})

	c := p.PollOnce()
	require.NoError(t, c.SafetyErr)
	require.NotNil(t, c.Snapshot.Safety)
	assert.Error(t, c.AuxErr)
	assert.Equal(t, status.Environment{}, c.Snapshot.Environment)
	assert.Equal(t, alarm.EmergencyStop, c.Alert.Kind)
}

func TestPollOnce_EmergencyPreemptsAccess(t *testing.T) {
	ch := &fakeChannel{reading: payload.Reading{DistanceMM: 5, StatusCode: payload.StatusEmergencyStop}}
	p := newPoller(t, ch, env, fixedAccess{"CARD_0001"})

	c := p.PollOnce()
	assert.Equal(t, status.SafetyEmergencyStop, c.Snapshot.Safety.Status)
	assert.Equal(t, alarm.Alert{Kind: alarm.EmergencyStop}, c.Alert)
}

func TestPollOnce_RealSubsystemsWithFailedDevice(t *testing.T) {
	rng := subsystem.NewRand(11)
	p := newPoller(t, &fakeChannel{fail: true}, subsystem.NewEnvironment(rng), subsystem.NewAccess(rng, 1))

	c := p.PollOnce()
	assert.Nil(t, c.Snapshot.Safety)
	assert.GreaterOrEqual(t, c.Snapshot.Environment.PM25, subsystem.PM25Min)
	assert.Less(t, c.Snapshot.Environment.NoiseDB, subsystem.NoiseDBMax)
	assert.Regexp(t, `^CARD_[0-9]{4}$`, c.Snapshot.Access.LastScan)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	ch := &fakeChannel{}
	acc := fixedAccess{status.NoCard}

	_, err := New(Config{Interval: 0}, ch, env, acc)
	assert.Error(t, err)
	_, err = New(Config{Interval: time.Second}, nil, env, acc)
	assert.Error(t, err)
	_, err = New(Config{Interval: time.Second}, ch, nil, acc)
	assert.Error(t, err)
}

// ---- Scheduler ----

func TestScheduler_RunDeliversAndStopsOnCancel(t *testing.T) {
	muteLogs(t)
	ch := &fakeChannel{fail: true}
	sink := &recordingSink{err: errors.New("sink down")}
	s := NewScheduler(newPoller(t, ch, env, fixedAccess{status.NoCard}), sink, ch)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.count() >= 3 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, Running, s.State())

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 1, ch.closeCount())
}

func TestScheduler_ShutdownTwiceReleasesOnce(t *testing.T) {
	muteLogs(t)
	ch := &fakeChannel{}
	s := NewScheduler(newPoller(t, ch, env, fixedAccess{status.NoCard}), &recordingSink{}, ch)

	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()
	require.Eventually(t, func() bool { return s.State() == Running }, time.Second, time.Millisecond)

	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
	require.NoError(t, <-errc)

	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 1, ch.closeCount())
}

func TestScheduler_ShutdownBeforeRun(t *testing.T) {
	ch := &fakeChannel{}
	s := NewScheduler(newPoller(t, ch, env, fixedAccess{status.NoCard}), nil, ch)

	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 1, ch.closeCount())

	assert.ErrorIs(t, s.Run(context.Background()), ErrNotIdle)
	assert.Equal(t, 0, ch.calls)
}

func TestScheduler_ConcurrentShutdown(t *testing.T) {
	muteLogs(t)
	ch := &fakeChannel{}
	s := NewScheduler(newPoller(t, ch, env, fixedAccess{status.NoCard}), &recordingSink{}, ch)

	go func() { _ = s.Run(context.Background()) }()
	require.Eventually(t, func() bool { return s.State() == Running }, time.Second, time.Millisecond)

	var wg sync.WaitGroup
	var errs atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Shutdown(); err != nil {
				errs.Add(1)
			}
		}()
	}
	wg.Wait()

	<-s.Done()
	assert.Equal(t, int32(0), errs.Load())
	assert.Equal(t, 1, ch.closeCount())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "draining", Draining.String())
	assert.Equal(t, "stopped", Stopped.String())
}
