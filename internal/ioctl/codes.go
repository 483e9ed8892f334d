// internal/ioctl/codes.go
package ioctl

import "fmt"

// Linux ioctl request number layout (asm-generic/ioctl.h).
// These values define the protocol and MUST NOT be configurable.
const (
	nrBits   = 8
	typeBits = 8
	sizeBits = 14
	dirBits  = 2

	nrShift   = 0
	typeShift = nrShift + nrBits
	sizeShift = typeShift + typeBits
	dirShift  = sizeShift + sizeBits

	nrMask   = 1<<nrBits - 1
	typeMask = 1<<typeBits - 1
	sizeMask = 1<<sizeBits - 1
	dirMask  = 1<<dirBits - 1
)

// DirRead is the _IOC_READ direction (kernel -> user).
const DirRead = 2

// MaxSize is the largest payload size the size field can carry.
const MaxSize = sizeMask

// ---- SENSOR CONTRACT (must match sensor_ioctl.h) ----

// SensorMagic is the type tag shared with the driver header.
const SensorMagic byte = 'S'

// GetDataNr is the sequence number of the "get data" command.
const GetDataNr byte = 1

// SetMockDistanceNr is the sequence number of the "set mock distance" command.
const SetMockDistanceNr byte = 2

// GetDataSize is sizeof(struct sensor_data): u32 + s32 + s32.
const GetDataSize = 12

// SetMockDistanceSize is sizeof(int).
const SetMockDistanceSize = 4

// Code is a 32-bit ioctl request number.
type Code uint32

// Precomputed command codes. Derived once, used on every exchange.
var (
	GetData         = IOR(SensorMagic, GetDataNr, GetDataSize)
	SetMockDistance = IOR(SensorMagic, SetMockDistanceNr, SetMockDistanceSize)
)

// IOR derives a read-direction command code, equivalent to the _IOR macro.
// Sizes wider than 14 bits are masked; the C macro rejects them at compile time.
func IOR(typ, nr byte, size uint32) Code {
	return Code(uint32(DirRead)<<dirShift |
		(size&sizeMask)<<sizeShift |
		uint32(typ)<<typeShift |
		uint32(nr)<<nrShift)
}

// Dir returns the direction bits.
func (c Code) Dir() uint32 { return uint32(c) >> dirShift & dirMask }

// Size returns the payload size encoded in the code.
func (c Code) Size() int { return int(uint32(c) >> sizeShift & sizeMask) }

// Type returns the magic type tag.
func (c Code) Type() byte { return byte(uint32(c) >> typeShift & typeMask) }

// Nr returns the command sequence number.
func (c Code) Nr() byte { return byte(uint32(c) >> nrShift & nrMask) }

func (c Code) String() string {
	return fmt.Sprintf("0x%08x", uint32(c))
}
