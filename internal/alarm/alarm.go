// internal/alarm/alarm.go
package alarm

import "github.com/tamzrod/sensor-adapter/internal/status"

// Kind classifies the single notification a cycle may raise.
// Values are published in the snapshot register block.
type Kind uint16

const (
	None          Kind = 0
	EmergencyStop Kind = 1 // siren + motor offline
	AccessScan    Kind = 2
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case EmergencyStop:
		return "EMERGENCY_STOP"
	case AccessScan:
		return "ACCESS_SCAN"
	default:
		return "UNKNOWN"
	}
}

// Alert is the outcome of Evaluate.
type Alert struct {
	Kind Kind
	Card string // set for AccessScan only
}

// Evaluate applies the alarm policy in priority order.
// Safety strictly preempts access: at most one alert per cycle.
func Evaluate(s status.Snapshot) Alert {
	if s.Safety.EmergencyStop() {
		return Alert{Kind: EmergencyStop}
	}
	if s.Access.Scanned() {
		return Alert{Kind: AccessScan, Card: s.Access.LastScan}
	}
	return Alert{Kind: None}
}
