// internal/status/constants.go
package status

// Snapshot register block layout constants.
// These values define the published protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerSnapshot is the fixed number of registers in one snapshot block.
const SlotsPerSnapshot = 16

// ---- SLOT INDICES ----

// SlotHealthCode holds the safety path health.
const SlotHealthCode = 0

// SlotSafetyStatus holds the driver status code (SafetyAbsent when no reading).
const SlotSafetyStatus = 1

// SlotDistanceHi and SlotDistanceLo hold distance_mm as a big-endian int32 pair.
const SlotDistanceHi = 2
const SlotDistanceLo = 3

// SlotDeviceTimeHi and SlotDeviceTimeLo hold the driver timestamp as a big-endian uint32 pair.
const SlotDeviceTimeHi = 4
const SlotDeviceTimeLo = 5

// SlotPM25 holds the PM2.5 reading.
const SlotPM25 = 6

// SlotNoiseDB holds the noise level in dB.
const SlotNoiseDB = 7

// SlotAccessScanned is 1 when a card was scanned this cycle.
const SlotAccessScanned = 8

// SlotCardNumber holds the scanned card number (0 when none).
const SlotCardNumber = 9

// SlotAlertCode holds the alert raised this cycle.
const SlotAlertCode = 10

// SlotCyclesInError holds the number of consecutive cycles without a safety reading.
const SlotCyclesInError = 11

// ---- RESERVED RANGE ----

// Slots 12–15 are reserved for future use.
const SlotReservedStart = 12
const SlotReservedEnd = 15

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state before the first cycle.
const HealthUnknown uint16 = 0

// HealthOK means the device exchange succeeded this cycle.
const HealthOK uint16 = 1

// HealthError means the device exchange failed this cycle.
const HealthError uint16 = 2

// ---- SAFETY STATUS CODES ----

// SafetyCodeNormal mirrors STATUS_NORMAL.
const SafetyCodeNormal uint16 = 0

// SafetyCodeEmergencyStop mirrors STATUS_EMERGENCY_STOP.
const SafetyCodeEmergencyStop uint16 = 1

// SafetyAbsent marks a cycle without a safety reading.
const SafetyAbsent uint16 = 0xFFFF

// ---- LIMITS ----

// MaxCyclesInError is where the error counter saturates.
const MaxCyclesInError = 65535
