// internal/status/status_test.go
package status

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAccess_CardNumber(t *testing.T) {
	tests := []struct {
		scan   string
		want   uint16
		wantOK bool
	}{
		{"CARD_0042", 42, true},
		{"CARD_0000", 0, true},
		{"CARD_9999", 9999, true},
		{NoCard, 0, false},
		{"CARD_42", 0, false},
		{"CARD_00x1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := Access{LastScan: tt.scan}.CardNumber()
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("CardNumber(%q) = %d,%v want %d,%v", tt.scan, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSafety_EmergencyStopNilSafe(t *testing.T) {
	var s *Safety
	if s.EmergencyStop() {
		t.Fatal("nil safety must not report emergency")
	}
	if !(&Safety{Status: SafetyEmergencyStop}).EmergencyStop() {
		t.Fatal("expected emergency")
	}
}

func TestEncode_FullReading(t *testing.T) {
	f := Frame{
		Snapshot: Snapshot{
			At: time.Unix(0, 0),
			Safety: &Safety{
				DeviceTimestamp: 0x00012345,
				DistanceMM:      -2,
				Status:          SafetyEmergencyStop,
			},
			Environment: Environment{PM25: 33, NoiseDB: 71},
			Access:      Access{LastScan: "CARD_0042"},
		},
		AlertCode:     1,
		CyclesInError: 0,
	}

	want := make([]uint16, SlotsPerSnapshot)
	want[SlotHealthCode] = HealthOK
	want[SlotSafetyStatus] = SafetyCodeEmergencyStop
	want[SlotDistanceHi] = 0xFFFF
	want[SlotDistanceLo] = 0xFFFE
	want[SlotDeviceTimeHi] = 0x0001
	want[SlotDeviceTimeLo] = 0x2345
	want[SlotPM25] = 33
	want[SlotNoiseDB] = 71
	want[SlotAccessScanned] = 1
	want[SlotCardNumber] = 42
	want[SlotAlertCode] = 1

	if diff := cmp.Diff(want, Encode(f)); diff != "" {
		t.Fatalf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_SafetyAbsent(t *testing.T) {
	regs := Encode(Frame{
		Snapshot: Snapshot{
			Environment: Environment{PM25: 10, NoiseDB: 40},
			Access:      Access{LastScan: NoCard},
		},
		CyclesInError: 3,
	})

	if regs[SlotHealthCode] != HealthError {
		t.Fatalf("health: got=%d want=%d", regs[SlotHealthCode], HealthError)
	}
	if regs[SlotSafetyStatus] != SafetyAbsent {
		t.Fatalf("safety status: got=0x%04x want=0x%04x", regs[SlotSafetyStatus], SafetyAbsent)
	}
	if regs[SlotAccessScanned] != 0 || regs[SlotCardNumber] != 0 {
		t.Fatalf("no card expected, got scanned=%d card=%d", regs[SlotAccessScanned], regs[SlotCardNumber])
	}
	if regs[SlotCyclesInError] != 3 {
		t.Fatalf("cycles in error: got=%d want=3", regs[SlotCyclesInError])
	}
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d must be zero, got %d", i, regs[i])
		}
	}
}
