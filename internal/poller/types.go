// internal/poller/types.go
package poller

import (
	"github.com/tamzrod/sensor-adapter/internal/alarm"
	"github.com/tamzrod/sensor-adapter/internal/status"
)

// EnvironmentSampler produces one environment reading per cycle.
type EnvironmentSampler interface {
	Sample() status.Environment
}

// AccessSampler produces one access reading per cycle.
type AccessSampler interface {
	Sample() status.Access
}

// Cycle is everything one poll cycle produced.
type Cycle struct {
	Snapshot status.Snapshot
	Alert    alarm.Alert

	// SafetyErr is non-nil exactly when Snapshot.Safety is nil.
	SafetyErr error

	// AuxErr is non-nil if an auxiliary sampler failed; its reading is zero.
	AuxErr error
}

// Sink receives each cycle on the scheduler goroutine.
type Sink interface {
	Write(c Cycle) error
}
