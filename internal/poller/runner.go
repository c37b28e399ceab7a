// internal/poller/runner.go
package poller

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/smartheater/internal/status"
)

// Run starts the ticker loop and emits a Snapshot on the provided channel.
// One goroutine per heater. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- Snapshot) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- p.PollOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}

// Publish drains snapshots into l until in is closed or ctx ends.
// Health transitions are logged once: on the first failed cycle and on recovery.
func Publish(ctx context.Context, in <-chan Snapshot, l *Latest) {
	healthy := true
	var failedSince time.Time
	var lastCode status.Code

	for {
		select {
		case <-ctx.Done():
			return

		case snap, ok := <-in:
			if !ok {
				return
			}
			l.Store(snap)

			if snap.Err == nil {
				// Recovery / OK
				if !healthy {
					log.WithField("down", snap.At.Sub(failedSince).Round(time.Second)).Info("heater reachable again")
					healthy = true
				}
				continue
			}

			// Error: log on entering the failed state or when the failure kind changes.
			if healthy || snap.Status != lastCode {
				log.WithField("status", snap.Status).Warnf("poll failed: %v", snap.Err)
			}
			if healthy {
				failedSince = snap.At
				healthy = false
			}
			lastCode = snap.Status
		}
	}
}
