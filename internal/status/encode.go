// internal/status/encode.go
package status

// Frame is exactly what a register sink is allowed to deliver for one cycle.
type Frame struct {
	Snapshot      Snapshot
	AlertCode     uint16
	CyclesInError uint16
}

// Encode converts a Frame into a full snapshot register block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(f Frame) []uint16 {
	regs := make([]uint16, SlotsPerSnapshot)
	s := f.Snapshot

	if s.Safety == nil {
		regs[SlotHealthCode] = HealthError
		regs[SlotSafetyStatus] = SafetyAbsent
	} else {
		regs[SlotHealthCode] = HealthOK
		regs[SlotSafetyStatus] = SafetyCodeNormal
		if s.Safety.EmergencyStop() {
			regs[SlotSafetyStatus] = SafetyCodeEmergencyStop
		}
		putU32(regs[SlotDistanceHi:SlotDistanceLo+1], uint32(s.Safety.DistanceMM))
		putU32(regs[SlotDeviceTimeHi:SlotDeviceTimeLo+1], s.Safety.DeviceTimestamp)
	}

	regs[SlotPM25] = clampU16(s.Environment.PM25)
	regs[SlotNoiseDB] = clampU16(s.Environment.NoiseDB)

	if n, ok := s.Access.CardNumber(); ok {
		regs[SlotAccessScanned] = 1
		regs[SlotCardNumber] = n
	}

	regs[SlotAlertCode] = f.AlertCode
	regs[SlotCyclesInError] = f.CyclesInError

	return regs
}

// putU32 stores v as two registers, high word first.
func putU32(dst []uint16, v uint32) {
	dst[0] = uint16(v >> 16)
	dst[1] = uint16(v)
}

func clampU16(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > 0xFFFF:
		return 0xFFFF
	default:
		return uint16(v)
	}
}
