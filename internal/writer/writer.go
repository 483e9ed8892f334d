// internal/writer/writer.go
package writer

import (
	"errors"
	"strings"

	"github.com/tamzrod/sensor-adapter/internal/poller"
)

// multiWriter fans one cycle out to every writer.
// A failing writer never prevents the others from running.
type multiWriter struct {
	writers []Writer
}

// New composes the log writer with the register writer (if any targets)
// and any extra writers, in that order.
func New(plan Plan, clients map[string]endpointClient, extra ...Writer) Writer {
	ws := []Writer{NewLogWriter(plan)}
	if len(plan.Targets) > 0 {
		ws = append(ws, NewRegisterWriter(plan, clients))
	}
	for _, w := range extra {
		if w != nil {
			ws = append(ws, w)
		}
	}
	return &multiWriter{writers: ws}
}

func (m *multiWriter) Write(c poller.Cycle) error {
	var errs []string
	for _, w := range m.writers {
		if err := w.Write(c); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}
