// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"math"
	"net"

	"github.com/tamzrod/sensor-adapter/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	a := cfg.Adapter

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if a.Device.Path == "" && !a.Device.Simulate {
		return errors.New("device.path is required unless device.simulate is set")
	}

	// ------------------------------------------------------------
	// POLL / POLICY
	// ------------------------------------------------------------

	if a.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll.interval_ms must be > 0, got %d", a.Poll.IntervalMs)
	}
	if a.Safety.WarnDistanceMm < 0 {
		return fmt.Errorf("safety.warn_distance_mm must be >= 0, got %d", a.Safety.WarnDistanceMm)
	}

	p := a.Subsystems.ScanProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("subsystems.scan_probability must be within [0,1], got %v", p)
	}

	// ------------------------------------------------------------
	// PUBLISH ENDPOINTS (OPT-IN)
	// ------------------------------------------------------------

	if err := validateEndpoint("publish.modbus", a.Publish.Modbus); err != nil {
		return err
	}
	if err := validateEndpoint("publish.ingest", a.Publish.Ingest); err != nil {
		return err
	}

	if m, i := a.Publish.Modbus, a.Publish.Ingest; m != nil && i != nil &&
		m.Endpoint == i.Endpoint && m.UnitID == i.UnitID && m.Address == i.Address {
		return fmt.Errorf(
			"publish collision: modbus and ingest both target endpoint=%s unit_id=%d address=%d",
			m.Endpoint, m.UnitID, m.Address,
		)
	}

	if r := a.Publish.Redis; r != nil {
		if r.Addr == "" {
			return errors.New("publish.redis.addr is required")
		}
		if r.DB < 0 {
			return fmt.Errorf("publish.redis.db must be >= 0, got %d", r.DB)
		}
		if r.TimeoutMs < 0 {
			return fmt.Errorf("publish.redis.timeout_ms must be >= 0, got %d", r.TimeoutMs)
		}
	}

	// ------------------------------------------------------------
	// METRICS (OPT-IN)
	// ------------------------------------------------------------
	if l := a.Metrics.Listen; l != "" {
		if _, _, err := net.SplitHostPort(l); err != nil {
			return fmt.Errorf("metrics.listen %q: %w", l, err)
		}
	}

	return nil
}

func validateEndpoint(name string, e *EndpointConfig) error {
	if e == nil {
		return nil
	}
	if e.Endpoint == "" {
		return fmt.Errorf("%s.endpoint is required", name)
	}
	if end := int(e.Address) + status.SlotsPerSnapshot; end > 65536 {
		return fmt.Errorf("%s.address %d: block of %d registers overflows the register space", name, e.Address, status.SlotsPerSnapshot)
	}
	if e.TimeoutMs < 0 {
		return fmt.Errorf("%s.timeout_ms must be >= 0, got %d", name, e.TimeoutMs)
	}
	return nil
}
