// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one Cycle per tick on out.
// One goroutine. No overlap: a slow cycle makes the ticker drop ticks
// rather than queue them. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- Cycle) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c := p.PollOnce()
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}
}
