// internal/config/normalize.go
package config

import "github.com/tamzrod/sensor-adapter/internal/device"

// SimulatorLabel names the simulated device in logs and documents.
const SimulatorLabel = "simulator"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Simulated device: the path is only a label. An explicit non-default
	// path is kept so several simulated adapters stay distinguishable.
	if d := &cfg.Adapter.Device; d.Simulate && (d.Path == "" || d.Path == device.DefaultPath) {
		d.Path = SimulatorLabel
	}

	for _, e := range []*EndpointConfig{cfg.Adapter.Publish.Modbus, cfg.Adapter.Publish.Ingest} {
		if e != nil && e.TimeoutMs == 0 {
			e.TimeoutMs = DefaultTimeoutMs
		}
	}

	if r := cfg.Adapter.Publish.Redis; r != nil {
		if r.Channel == "" {
			r.Channel = DefaultRedisChannel
		}
		if r.Key == "" {
			r.Key = DefaultRedisKey
		}
		if r.TimeoutMs == 0 {
			r.TimeoutMs = DefaultTimeoutMs
		}
	}
}
