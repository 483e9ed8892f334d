// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/sensor-adapter/internal/alarm"
	"github.com/tamzrod/sensor-adapter/internal/poller"
)

// Metrics tracks poll cycles. It is a cycle writer, so the scheduler
// feeds it like any other sink.
type Metrics struct {
	Cycles        prometheus.Counter
	SafetyAbsent  prometheus.Counter
	AuxErrors     prometheus.Counter
	Alerts        *prometheus.CounterVec
	DistanceMM    prometheus.Gauge
	EmergencyStop prometheus.Gauge
	PM25          prometheus.Gauge
	NoiseDB       prometheus.Gauge
}

// New creates the adapter metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensor_adapter_cycles_total",
			Help: "Poll cycles completed.",
		}),
		SafetyAbsent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensor_adapter_safety_absent_total",
			Help: "Cycles without a safety reading (device exchange failed).",
		}),
		AuxErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensor_adapter_subsystem_errors_total",
			Help: "Cycles in which an environment or access sampler failed.",
		}),
		Alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sensor_adapter_alerts_total",
				Help: "Alerts raised, by kind.",
			},
			[]string{"kind"},
		),
		DistanceMM: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensor_adapter_distance_mm",
			Help: "Last distance reported by the device.",
		}),
		EmergencyStop: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensor_adapter_emergency_stop",
			Help: "1 while the device reports EMERGENCY_STOP.",
		}),
		PM25: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensor_adapter_pm25",
			Help: "Last PM2.5 reading.",
		}),
		NoiseDB: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensor_adapter_noise_db",
			Help: "Last noise level in dB.",
		}),
	}

	reg.MustRegister(
		m.Cycles,
		m.SafetyAbsent,
		m.AuxErrors,
		m.Alerts,
		m.DistanceMM,
		m.EmergencyStop,
		m.PM25,
		m.NoiseDB,
	)
	return m
}

// Write records one cycle. Gauges keep their last value while the
// safety reading is absent.
func (m *Metrics) Write(c poller.Cycle) error {
	m.Cycles.Inc()

	s := c.Snapshot
	if s.Safety == nil {
		m.SafetyAbsent.Inc()
	} else {
		m.DistanceMM.Set(float64(s.Safety.DistanceMM))
		if s.Safety.EmergencyStop() {
			m.EmergencyStop.Set(1)
		} else {
			m.EmergencyStop.Set(0)
		}
	}

	if c.AuxErr != nil {
		m.AuxErrors.Inc()
	}
	m.PM25.Set(float64(s.Environment.PM25))
	m.NoiseDB.Set(float64(s.Environment.NoiseDB))

	if c.Alert.Kind != alarm.None {
		m.Alerts.WithLabelValues(c.Alert.Kind.String()).Inc()
	}
	return nil
}
