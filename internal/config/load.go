// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/subsystem"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultIntervalMs     = 1000
	DefaultWarnDistanceMm = 50
	DefaultTimeoutMs      = 1000

	DefaultRedisChannel = "sensor_adapter:snapshots"
	DefaultRedisKey     = "sensor_adapter:latest"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Adapter: AdapterConfig{
			Device: DeviceConfig{Path: device.DefaultPath},
			Poll:   PollConfig{IntervalMs: DefaultIntervalMs},
			Safety: SafetyConfig{WarnDistanceMm: DefaultWarnDistanceMm},
			Subsystems: SubsystemConfig{
				ScanProbability: subsystem.DefaultScanProbability,
			},
		},
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes on top of Default. An empty document yields Default.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
