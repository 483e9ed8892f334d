// internal/config/validate_test.go
package config

import (
	"testing"

	"github.com/tamzrod/sensor-adapter/internal/device"
)

// helper to build a valid config quickly
func valid() *Config {
	return Default()
}

func endpoint(ep string, unit uint8, addr uint16) *EndpointConfig {
	return &EndpointConfig{Endpoint: ep, UnitID: unit, Address: addr}
}

// ---- tests ----

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"nil path without simulate", func(c *Config) { c.Adapter.Device.Path = "" }},
		{"zero interval", func(c *Config) { c.Adapter.Poll.IntervalMs = 0 }},
		{"negative warn distance", func(c *Config) { c.Adapter.Safety.WarnDistanceMm = -1 }},
		{"probability above one", func(c *Config) { c.Adapter.Subsystems.ScanProbability = 1.5 }},
		{"negative probability", func(c *Config) { c.Adapter.Subsystems.ScanProbability = -0.1 }},
		{"modbus without endpoint", func(c *Config) { c.Adapter.Publish.Modbus = endpoint("", 1, 0) }},
		{"ingest negative timeout", func(c *Config) {
			c.Adapter.Publish.Ingest = endpoint("127.0.0.1:9000", 1, 0)
			c.Adapter.Publish.Ingest.TimeoutMs = -5
		}},
		{"block overflows register space", func(c *Config) { c.Adapter.Publish.Modbus = endpoint("127.0.0.1:502", 1, 65530) }},
		{"redis without addr", func(c *Config) { c.Adapter.Publish.Redis = &RedisConfig{} }},
		{"redis negative db", func(c *Config) { c.Adapter.Publish.Redis = &RedisConfig{Addr: "localhost:6379", DB: -1} }},
		{"metrics listen without port", func(c *Config) { c.Adapter.Metrics.Listen = "localhost" }},
		{"publish collision", func(c *Config) {
			c.Adapter.Publish.Modbus = endpoint("127.0.0.1:502", 1, 0)
			c.Adapter.Publish.Ingest = endpoint("127.0.0.1:502", 1, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_SimulateWithoutPath(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Device.Path = ""
	cfg.Adapter.Device.Simulate = true

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	Normalize(cfg)
	if cfg.Adapter.Device.Path != SimulatorLabel {
		t.Fatalf("expected simulator label, got %q", cfg.Adapter.Device.Path)
	}
}

func TestValidate_SameEndpointDifferentAddressAllowed(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Publish.Modbus = endpoint("127.0.0.1:502", 1, 0)
	cfg.Adapter.Publish.Ingest = endpoint("127.0.0.1:502", 1, 16)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalize_DefaultTimeout(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Publish.Modbus = endpoint("127.0.0.1:502", 1, 0)

	Normalize(cfg)
	if cfg.Adapter.Publish.Modbus.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout: got=%d want=%d", cfg.Adapter.Publish.Modbus.TimeoutMs, DefaultTimeoutMs)
	}
}

func TestNormalize_RedisDefaults(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Publish.Redis = &RedisConfig{Addr: "localhost:6379", Key: "line1:latest"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)

	r := cfg.Adapter.Publish.Redis
	if r.Channel != DefaultRedisChannel {
		t.Fatalf("channel: got=%q want=%q", r.Channel, DefaultRedisChannel)
	}
	if r.Key != "line1:latest" {
		t.Fatalf("key overwritten: %q", r.Key)
	}
	if r.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout: got=%d want=%d", r.TimeoutMs, DefaultTimeoutMs)
	}
}

func TestNormalize_SimulateRelabelsDefaultPath(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Device.Simulate = true
	Normalize(cfg)
	if cfg.Adapter.Device.Path != SimulatorLabel {
		t.Fatalf("path: got=%q want=%q", cfg.Adapter.Device.Path, SimulatorLabel)
	}
}

func TestNormalize_SimulateKeepsExplicitPath(t *testing.T) {
	cfg := valid()
	cfg.Adapter.Device.Simulate = true
	cfg.Adapter.Device.Path = "bench-2"
	Normalize(cfg)
	if cfg.Adapter.Device.Path != "bench-2" {
		t.Fatalf("path: got=%q want=bench-2", cfg.Adapter.Device.Path)
	}
}

func TestNormalize_RealDeviceKeepsDefaultPath(t *testing.T) {
	cfg := valid()
	Normalize(cfg)
	if cfg.Adapter.Device.Path != device.DefaultPath {
		t.Fatalf("path: got=%q want=%q", cfg.Adapter.Device.Path, device.DefaultPath)
	}
}
