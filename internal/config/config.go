// internal/config/config.go
package config

type Config struct {
	Adapter AdapterConfig `yaml:"adapter"`
}

type AdapterConfig struct {
	Device     DeviceConfig    `yaml:"device"`
	Poll       PollConfig      `yaml:"poll"`
	Safety     SafetyConfig    `yaml:"safety"`
	Subsystems SubsystemConfig `yaml:"subsystems"`
	Publish    PublishConfig   `yaml:"publish"`
	Metrics    MetricsConfig   `yaml:"metrics"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Path string `yaml:"path"`

	// Simulate replaces the kernel driver with the in-process simulator.
	Simulate bool `yaml:"simulate"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- SAFETY ----

type SafetyConfig struct {
	// WarnDistanceMm logs a proximity warning below this distance. 0 disables it.
	WarnDistanceMm int `yaml:"warn_distance_mm"`
}

// ---- AUXILIARY SUBSYSTEMS ----

type SubsystemConfig struct {
	Seed            uint64  `yaml:"seed"` // 0 = seed from clock
	ScanProbability float64 `yaml:"scan_probability"`
}

// ---- PUBLISH (optional register sinks) ----

type PublishConfig struct {
	Modbus *EndpointConfig `yaml:"modbus"`
	Ingest *EndpointConfig `yaml:"ingest"`
	Redis  *RedisConfig    `yaml:"redis"`
}

type EndpointConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// RedisConfig publishes each snapshot as a JSON document.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	Channel   string `yaml:"channel"` // pub/sub channel for every snapshot
	Key       string `yaml:"key"`     // holds the latest snapshot
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- METRICS ----

type MetricsConfig struct {
	// Listen is the Prometheus /metrics address. Empty disables it.
	Listen string `yaml:"listen"`
}
