// internal/services/geo/monitor_manager.go
package geo

import (
	"errors"
	"sync"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
)

var (
	ErrMonitorRunning    = errors.New("monitor already running for volunteer")
	ErrMonitorNotRunning = errors.New("no monitor running for volunteer")
)

// MonitorManager owns at most one monitor per volunteer. A second
// start without a stop is refused instead of leaking a duplicate
// sampler.
type MonitorManager struct {
	mu       sync.Mutex
	monitors map[int]*Monitor
}

func NewMonitorManager() *MonitorManager {
	return &MonitorManager{monitors: make(map[int]*Monitor)}
}

func (m *MonitorManager) Start(volunteerID int, source PositionSource, centers []models.Center, interval time.Duration, onEnter EnterFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.monitors[volunteerID]; exists {
		return ErrMonitorRunning
	}
	m.monitors[volunteerID] = StartMonitor(source, centers, interval, onEnter)
	return nil
}

func (m *MonitorManager) Stop(volunteerID int) error {
	m.mu.Lock()
	monitor, exists := m.monitors[volunteerID]
	if exists {
		delete(m.monitors, volunteerID)
	}
	m.mu.Unlock()

	if !exists {
		return ErrMonitorNotRunning
	}
	monitor.Stop()
	return nil
}

// StopAll releases every monitor; used on shutdown.
func (m *MonitorManager) StopAll() {
	m.mu.Lock()
	monitors := m.monitors
	m.monitors = make(map[int]*Monitor)
	m.mu.Unlock()

	for _, monitor := range monitors {
		monitor.Stop()
	}
}
