// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/alarm"
	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/ioctl"
	"github.com/tamzrod/sensor-adapter/internal/payload"
	"github.com/tamzrod/sensor-adapter/internal/status"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device   string // used for log context only
	Interval time.Duration
}

// Poller is a clock-driven aggregator. It owns the exchange buffer
// and is the only user of the device channel.
type Poller struct {
	cfg Config
	ch  device.Channel
	env EnvironmentSampler
	acc AccessSampler
	now func() time.Time

	buf [payload.Size]byte
}

// New creates a poller with immutable config.
func New(cfg Config, ch device.Channel, env EnvironmentSampler, acc AccessSampler) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if ch == nil {
		return nil, errors.New("poller: device channel required")
	}
	if env == nil || acc == nil {
		return nil, errors.New("poller: environment and access samplers required")
	}
	return &Poller{cfg: cfg, ch: ch, env: env, acc: acc, now: time.Now}, nil
}

// Interval returns the configured cycle period.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }

// PollOnce performs exactly one aggregation cycle.
// The safety path and the auxiliary path are isolated: a failure in
// one never prevents the other from producing its reading, and no
// per-cycle error escapes.
func (p *Poller) PollOnce() Cycle {
	safety, safetyErr := p.readSafety()
	env, acc, auxErr := p.sampleAux()

	snap := status.Snapshot{
		At:          p.now(),
		Safety:      safety,
		Environment: env,
		Access:      acc,
	}

	return Cycle{
		Snapshot:  snap,
		Alert:     alarm.Evaluate(snap),
		SafetyErr: safetyErr,
		AuxErr:    auxErr,
	}
}

// readSafety exchanges GET_DATA and decodes the reply.
// The buffer is only interpreted after a successful exchange.
func (p *Poller) readSafety() (s *status.Safety, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("poller: safety path panic: %v", r)
		}
	}()

	if err := p.ch.Exchange(ioctl.GetData, p.buf[:]); err != nil {
		return nil, err
	}

	r, err := payload.Decode(p.buf[:])
	if err != nil {
		return nil, err
	}

	return &status.Safety{
		DeviceTimestamp: r.Timestamp,
		DistanceMM:      r.DistanceMM,
		Status:          r.Status(),
	}, nil
}

func (p *Poller) sampleAux() (status.Environment, status.Access, error) {
	env, envErr := sample("environment", p.env.Sample)
	acc, accErr := sample("access", p.acc.Sample)
	if accErr != nil {
		acc = status.Access{LastScan: status.NoCard}
	}
	return env, acc, errors.Join(envErr, accErr)
}

// sample runs one sampler, converting a panic into an error.
func sample[T any](name string, fn func() T) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("poller: %s sampler panic: %v", name, r)
		}
	}()
	return fn(), nil
}
