// internal/device/simulator.go
package device

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"syscall"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
	"github.com/tamzrod/sensor-adapter/internal/monitoring"
	"github.com/tamzrod/sensor-adapter/internal/payload"
)

// Simulated hardware constants, mirroring the mock_sensor module.
const (
	SimTick            = 100 * time.Millisecond
	SimStartDistanceMM = 100
	SimMinDistanceMM   = 5
	SimMaxDistanceMM   = 400
	SimStepMM          = 15
	SimNoiseMM         = 5  // noise is drawn from [0, SimNoiseMM)
	SimEmergencyMM     = 10 // status goes to emergency below this
)

// SimConfig configures a Simulator. Zero values select defaults.
type SimConfig struct {
	Now  func() time.Time
	Seed uint64
	Tick time.Duration
}

// Simulator is an in-process stand-in for the mock_sensor driver.
// It answers the same command codes with the same state machine,
// advancing one step per Tick of elapsed time.
type Simulator struct {
	mu sync.Mutex

	now  func() time.Time
	tick time.Duration
	rng  *rand.Rand

	start       time.Time
	last        time.Time
	distance    int32
	status      int32
	timestamp   uint32
	approaching bool

	closed bool
	once   sync.Once
}

// NewSimulator creates a simulated device in its power-on state.
func NewSimulator(cfg SimConfig) *Simulator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Tick <= 0 {
		cfg.Tick = SimTick
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(cfg.Now().UnixNano())
	}

	t0 := cfg.Now()
	return &Simulator{
		now:      cfg.Now,
		tick:     cfg.Tick,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		start:    t0,
		last:     t0,
		distance: SimStartDistanceMM,
	}
}

// maxCatchUp bounds how many missed ticks one call replays.
const maxCatchUp = 1000

// Exchange implements Channel.
func (s *Simulator) Exchange(code ioctl.Code, buf []byte) error {
	if err := checkBuffer(code, buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &ExchangeError{Code: code, Err: ErrClosed}
	}

	s.advance(s.now())

	switch code {
	case ioctl.GetData:
		payload.EncodeInto(buf, payload.Reading{
			Timestamp:  s.timestamp,
			DistanceMM: s.distance,
			StatusCode: s.status,
		})
		return nil

	case ioctl.SetMockDistance:
		s.distance = int32(binary.LittleEndian.Uint32(buf))
		monitoring.Logf("simulator: manual distance set to %dmm", s.distance)
		return nil

	default:
		return &ExchangeError{Code: code, Err: syscall.EINVAL}
	}
}

// Close implements Channel. Only the first call has an effect.
func (s *Simulator) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	})
	return nil
}

// advance replays the hardware timer up to now.
func (s *Simulator) advance(now time.Time) {
	steps := int(now.Sub(s.last) / s.tick)
	if steps <= 0 {
		return
	}
	if steps > maxCatchUp {
		s.last = now.Add(-time.Duration(maxCatchUp) * s.tick)
		steps = maxCatchUp
	}

	for i := 0; i < steps; i++ {
		s.last = s.last.Add(s.tick)
		s.step()
	}
	s.timestamp = uint32(s.last.Sub(s.start) / time.Millisecond)
}

func (s *Simulator) step() {
	delta := int32(SimStepMM + s.rng.IntN(SimNoiseMM))

	if !s.approaching {
		s.distance += delta
		if s.distance >= SimMaxDistanceMM {
			s.distance = SimMaxDistanceMM
			s.approaching = true
		}
	} else {
		s.distance -= delta
		if s.distance <= SimMinDistanceMM {
			s.distance = SimMinDistanceMM
			s.approaching = false
		}
	}

	if s.distance < SimEmergencyMM {
		if s.status != payload.StatusEmergencyStop {
			monitoring.Logf("simulator: [SAFETY CRITICAL] distance %dmm < %dmm, motor stopped", s.distance, SimEmergencyMM)
		}
		s.status = payload.StatusEmergencyStop
	} else {
		s.status = 0
	}
}
