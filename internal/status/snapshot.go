// internal/status/snapshot.go
package status

import (
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/payload"
)

// Safety status names as derived from the driver status code.
const (
	SafetyNormal        = payload.StatusNameNormal
	SafetyEmergencyStop = payload.StatusNameEmergencyStop
)

// Access scan values.
const (
	NoCard     = "NO_CARD"
	CardPrefix = "CARD_"
	CardDigits = 4
)

// Safety is the per-cycle summary of the kernel-sourced reading.
type Safety struct {
	DeviceTimestamp uint32
	DistanceMM      int32
	Status          string
}

// EmergencyStop reports whether the safety path demands a halt.
func (s *Safety) EmergencyStop() bool {
	return s != nil && s.Status == SafetyEmergencyStop
}

// Environment is one air-quality / noise reading.
type Environment struct {
	PM25    int
	NoiseDB int
}

// Access is one access-control poll result.
type Access struct {
	LastScan string
}

// Scanned reports whether a card was presented this cycle.
func (a Access) Scanned() bool {
	return a.LastScan != "" && a.LastScan != NoCard
}

// CardNumber extracts N from "CARD_NNNN".
func (a Access) CardNumber() (uint16, bool) {
	digits, ok := strings.CutPrefix(a.LastScan, CardPrefix)
	if !ok || len(digits) != CardDigits {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// Snapshot is one cycle's merged view. It is built once by the poller,
// handed to the writers and dropped; nothing keeps history.
// Safety is nil when the device exchange failed.
type Snapshot struct {
	At          time.Time
	Safety      *Safety
	Environment Environment
	Access      Access
}
