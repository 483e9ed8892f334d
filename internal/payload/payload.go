// internal/payload/payload.go
package payload

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
)

// Size is the exact wire size of struct sensor_data.
const Size = ioctl.GetDataSize

// Byte offsets inside the payload. Layout is protocol-locked.
const (
	offTimestamp  = 0
	offDistanceMM = 4
	offStatusCode = 8
)

// StatusEmergencyStop is the driver's STATUS_EMERGENCY_STOP value.
const StatusEmergencyStop int32 = 1

// Derived status names.
const (
	StatusNameNormal        = "NORMAL"
	StatusNameEmergencyStop = "EMERGENCY_STOP"
)

// ErrMalformedPayload is returned when a buffer is not exactly Size bytes.
var ErrMalformedPayload = errors.New("payload: malformed")

// Reading is the decoded struct sensor_data.
type Reading struct {
	Timestamp  uint32 // driver jiffies, truncated
	DistanceMM int32
	StatusCode int32
}

// Status maps the raw status code to its name.
func (r Reading) Status() string {
	if r.StatusCode == StatusEmergencyStop {
		return StatusNameEmergencyStop
	}
	return StatusNameNormal
}

// Decode interprets b as a little-endian sensor_data struct.
// No range checks: policy belongs to the caller.
func Decode(b []byte) (Reading, error) {
	if len(b) != Size {
		return Reading{}, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedPayload, len(b), Size)
	}
	return Reading{
		Timestamp:  binary.LittleEndian.Uint32(b[offTimestamp:]),
		DistanceMM: int32(binary.LittleEndian.Uint32(b[offDistanceMM:])),
		StatusCode: int32(binary.LittleEndian.Uint32(b[offStatusCode:])),
	}, nil
}

// Encode is the inverse of Decode.
func Encode(r Reading) [Size]byte {
	var b [Size]byte
	EncodeInto(b[:], r)
	return b
}

// EncodeInto writes r into dst, which must be at least Size bytes.
func EncodeInto(dst []byte, r Reading) {
	binary.LittleEndian.PutUint32(dst[offTimestamp:], r.Timestamp)
	binary.LittleEndian.PutUint32(dst[offDistanceMM:], uint32(r.DistanceMM))
	binary.LittleEndian.PutUint32(dst[offStatusCode:], uint32(r.StatusCode))
}
