// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/sensor-adapter/internal/config"
	"github.com/tamzrod/sensor-adapter/internal/device"
	"github.com/tamzrod/sensor-adapter/internal/subsystem"
)

// OpenChannel opens the configured device. A real node that cannot be
// opened is fatal at startup (device.ErrDeviceUnavailable).
func OpenChannel(d cfg.DeviceConfig) (device.Channel, error) {
	if d.Simulate {
		return device.NewSimulator(device.SimConfig{}), nil
	}
	f, err := device.Open(d.Path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Build constructs a Poller around an already-open channel.
// Auxiliary subsystems share one seeded source, so a fixed seed
// reproduces the same sequence of readings.
func Build(a cfg.AdapterConfig, ch device.Channel) (*Poller, error) {
	rng := subsystem.NewRand(a.Subsystems.Seed)

	return New(
		Config{
			Device:   a.Device.Path,
			Interval: time.Duration(a.Poll.IntervalMs) * time.Millisecond,
		},
		ch,
		subsystem.NewEnvironment(rng),
		subsystem.NewAccess(rng, a.Subsystems.ScanProbability),
	)
}
