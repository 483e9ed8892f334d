// internal/writer/register_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sensor-adapter/internal/poller"
	"github.com/tamzrod/sensor-adapter/internal/status"
)

// endpointClient is the exact contract the register writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

const areaHoldingRegisters byte = 3

// registerWriter publishes the snapshot register block to every target.
// It owns the only cross-cycle state in the delivery path: the count of
// consecutive cycles without a safety reading.
type registerWriter struct {
	blocks        []*blockWriter
	cyclesInError uint16
}

// blockWriter mirrors one target's block so unchanged registers are not rewritten.
type blockWriter struct {
	target RegisterTarget
	cli    endpointClient

	needFull bool
	last     []uint16
}

// NewRegisterWriter builds one block writer per target.
func NewRegisterWriter(plan Plan, clients map[string]endpointClient) Writer {
	w := &registerWriter{}
	for _, t := range plan.Targets {
		w.blocks = append(w.blocks, &blockWriter{
			target:   t,
			cli:      clients[t.key()],
			needFull: true, // full assert on first write
			last:     make([]uint16, status.SlotsPerSnapshot),
		})
	}
	return w
}

func (w *registerWriter) Write(c poller.Cycle) error {
	if c.Snapshot.Safety == nil {
		if w.cyclesInError < status.MaxCyclesInError {
			w.cyclesInError++
		}
	} else {
		w.cyclesInError = 0
	}

	regs := status.Encode(status.Frame{
		Snapshot:      c.Snapshot,
		AlertCode:     uint16(c.Alert.Kind),
		CyclesInError: w.cyclesInError,
	})

	var errs []string
	for _, b := range w.blocks {
		if err := b.write(regs); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

// write delivers regs. On any failure the next call re-asserts the full block.
func (b *blockWriter) write(regs []uint16) error {
	t := b.target
	if b.cli == nil {
		return fmt.Errorf("register writer: missing client (kind=%s endpoint=%s)", t.Kind, t.Endpoint)
	}

	// ------------------------------------------------------------
	// Full block write
	// ------------------------------------------------------------
	if b.needFull {
		if err := b.cli.WriteRegisters(areaHoldingRegisters, t.UnitID, t.Address, regs); err != nil {
			return fmt.Errorf("register writer: full block write failed (kind=%s endpoint=%s): %w", t.Kind, t.Endpoint, err)
		}
		b.needFull = false
		copy(b.last, regs)
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per contiguous run of changed slots
	// ------------------------------------------------------------
	var errs []string
	for _, r := range changedRuns(b.last, regs) {
		addr := t.Address + uint16(r.start)
		if err := b.cli.WriteRegisters(areaHoldingRegisters, t.UnitID, addr, regs[r.start:r.end]); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", r.start, r.end-1, err))
			continue
		}
		copy(b.last[r.start:r.end], regs[r.start:r.end])
	}

	if len(errs) > 0 {
		// Partial failure: re-assert the whole block on the next write.
		b.needFull = true
		return fmt.Errorf("register writer (kind=%s endpoint=%s): %s", t.Kind, t.Endpoint, strings.Join(errs, " | "))
	}
	return nil
}

type slotRun struct{ start, end int } // [start, end)

func changedRuns(prev, next []uint16) []slotRun {
	var runs []slotRun
	start := -1
	for i := range next {
		changed := i >= len(prev) || prev[i] != next[i]
		switch {
		case changed && start < 0:
			start = i
		case !changed && start >= 0:
			runs = append(runs, slotRun{start, i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, slotRun{start, len(next)})
	}
	return runs
}
