// internal/writer/document_writer.go
package writer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tamzrod/sensor-adapter/internal/poller"
)

// documentPublisher receives one encoded snapshot document per cycle.
type documentPublisher interface {
	Publish(doc []byte) error
}

// Document is the JSON form of one cycle.
type Document struct {
	Device      string          `json:"device"`
	At          time.Time       `json:"at"`
	Safety      *SafetyDocument `json:"safety"` // null when the exchange failed
	PM25        int             `json:"pm25"`
	NoiseDB     int             `json:"noise_db"`
	LastScan    string          `json:"last_scan"`
	Alert       string          `json:"alert"`
	Card        string          `json:"card,omitempty"`
	DeviceError string          `json:"device_error,omitempty"`
}

type SafetyDocument struct {
	DeviceTimestamp uint32 `json:"device_ts"`
	DistanceMM      int32  `json:"distance_mm"`
	Status          string `json:"status"`
}

// NewDocument renders a cycle for document sinks.
func NewDocument(device string, c poller.Cycle) Document {
	s := c.Snapshot
	d := Document{
		Device:   device,
		At:       s.At.UTC(),
		PM25:     s.Environment.PM25,
		NoiseDB:  s.Environment.NoiseDB,
		LastScan: s.Access.LastScan,
		Alert:    c.Alert.Kind.String(),
		Card:     c.Alert.Card,
	}
	if s.Safety != nil {
		d.Safety = &SafetyDocument{
			DeviceTimestamp: s.Safety.DeviceTimestamp,
			DistanceMM:      s.Safety.DistanceMM,
			Status:          s.Safety.Status,
		}
	}
	if c.SafetyErr != nil {
		d.DeviceError = c.SafetyErr.Error()
	}
	return d
}

type documentWriter struct {
	device string
	pub    documentPublisher
}

// NewDocumentWriter publishes every cycle as a JSON Document.
func NewDocumentWriter(plan Plan, pub documentPublisher) Writer {
	return &documentWriter{device: plan.Device, pub: pub}
}

func (w *documentWriter) Write(c poller.Cycle) error {
	doc, err := json.Marshal(NewDocument(w.device, c))
	if err != nil {
		return fmt.Errorf("document writer: encode: %w", err)
	}
	if err := w.pub.Publish(doc); err != nil {
		return fmt.Errorf("document writer: %w", err)
	}
	return nil
}
