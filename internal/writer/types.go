// internal/writer/types.go
package writer

import "github.com/tamzrod/sensor-adapter/internal/poller"

// Transport kinds for register targets.
const (
	KindModbus = "modbus"
	KindIngest = "ingest"
)

// RegisterTarget is one snapshot block destination.
type RegisterTarget struct {
	Kind     string
	Endpoint string
	UnitID   uint8
	Address  uint16 // first register of the block
}

// key identifies the client serving this target.
func (t RegisterTarget) key() string { return t.Kind + "|" + t.Endpoint }

// Plan is the fully-built publish plan for the adapter.
type Plan struct {
	Device         string
	WarnDistanceMM int32
	Targets        []RegisterTarget
}

// Writer delivers one poll cycle to the presentation boundary.
type Writer interface {
	Write(c poller.Cycle) error
}
