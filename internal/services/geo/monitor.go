// internal/services/geo/monitor.go
package geo

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
)

// PositionSource yields the current position of the tracked volunteer.
// ok is false when no recent position is known.
type PositionSource interface {
	Current(ctx context.Context) (lat, lon float64, ok bool, err error)
}

// EnterFunc is invoked once per outside->inside transition.
type EnterFunc func(center models.Center)

// Monitor is a running geofence watcher. It must be stopped explicitly;
// Stop is idempotent, so defer monitor.Stop() is safe alongside a
// logout path that also stops it.
type Monitor struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartMonitor samples the source on every tick and calls onEnter for
// each center the position has just moved inside of. Being inside on
// consecutive samples does not re-fire; leaving the radius re-arms the
// center. Exit events are intentionally not emitted.
func StartMonitor(source PositionSource, centers []models.Center, interval time.Duration, onEnter EnterFunc) *Monitor {
	m := &Monitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go m.run(source, centers, interval, onEnter)
	return m
}

// Stop cancels the watcher and waits for the sampling loop to exit.
func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Monitor) run(source PositionSource, centers []models.Center, interval time.Duration, onEnter EnterFunc) {
	defer close(m.done)

	inside := make(map[int]bool, len(centers))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			lat, lon, ok, err := source.Current(ctx)
			cancel()
			if err != nil {
				log.Printf("⚠️ Monitor: position sample failed: %v", err)
				continue
			}
			if !ok {
				continue
			}

			entered := make(map[int]bool, len(centers))
			for _, center := range EvaluateRegions(lat, lon, centers) {
				entered[center.ID] = true
				if !inside[center.ID] {
					onEnter(center)
				}
			}
			for _, center := range centers {
				inside[center.ID] = entered[center.ID]
			}
		}
	}
}
