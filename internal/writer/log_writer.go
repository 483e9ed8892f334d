// internal/writer/log_writer.go
package writer

import (
	"fmt"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/alarm"
	"github.com/tamzrod/sensor-adapter/internal/monitoring"
	"github.com/tamzrod/sensor-adapter/internal/poller"
	"github.com/tamzrod/sensor-adapter/internal/status"
)

// logWriter renders each cycle as one snapshot line plus at most one alert line.
type logWriter struct {
	device string
	warnMM int32
	logf   func(format string, v ...interface{})
}

// NewLogWriter returns a writer that logs through monitoring.Logf.
func NewLogWriter(plan Plan) Writer {
	return &logWriter{
		device: plan.Device,
		warnMM: plan.WarnDistanceMM,
		logf:   func(format string, v ...interface{}) { monitoring.Logf(format, v...) },
	}
}

func (w *logWriter) Write(c poller.Cycle) error {
	s := c.Snapshot

	w.logf("snapshot (device=%s at=%s safety=%s pm25=%d noise_db=%d access=%s)",
		w.device,
		s.At.UTC().Format(time.RFC3339Nano),
		formatSafety(s.Safety),
		s.Environment.PM25,
		s.Environment.NoiseDB,
		s.Access.LastScan,
	)

	// Proximity is advisory only; it is not one of the cycle's alerts.
	if sf := s.Safety; sf != nil && !sf.EmergencyStop() && w.warnMM > 0 && sf.DistanceMM < w.warnMM {
		w.logf("[WARNING] too close (device=%s distance_mm=%d)", w.device, sf.DistanceMM)
	}

	switch c.Alert.Kind {
	case alarm.EmergencyStop:
		w.logf("[ALARM] EMERGENCY STOP: siren on, motor offline (device=%s distance_mm=%d)",
			w.device, s.Safety.DistanceMM)
	case alarm.AccessScan:
		w.logf("[ACCESS] processing card (card=%s)", c.Alert.Card)
	}
	return nil
}

func formatSafety(s *status.Safety) string {
	if s == nil {
		return "absent"
	}
	return fmt.Sprintf("{distance_mm=%d status=%s device_ts=%d}", s.DistanceMM, s.Status, s.DeviceTimestamp)
}
