package geo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of positions, then keeps
// returning the last one.
type scriptedSource struct {
	mu        sync.Mutex
	positions [][2]float64
	index     int
}

func (s *scriptedSource) Current(ctx context.Context) (float64, float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.positions) == 0 {
		return 0, 0, false, nil
	}
	p := s.positions[s.index]
	if s.index < len(s.positions)-1 {
		s.index++
	}
	return p[0], p[1], true, nil
}

type enterRecorder struct {
	mu      sync.Mutex
	entries []int
}

func (r *enterRecorder) record(center models.Center) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, center.ID)
}

func (r *enterRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func waitForCount(t *testing.T, r *enterRecorder, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, want, r.count())
}

func testCenter() models.Center {
	return models.Center{ID: 1, Name: "Kitchen", Latitude: 50.0, Longitude: 10.0, Radius: 150}
}

func TestMonitor_FiresOnceWhileInside(t *testing.T) {
	// Outside, then inside for every later sample.
	source := &scriptedSource{positions: [][2]float64{
		{51.0, 10.0},
		{50.0, 10.0},
	}}
	recorder := &enterRecorder{}

	monitor := StartMonitor(source, []models.Center{testCenter()}, 5*time.Millisecond, recorder.record)
	waitForCount(t, recorder, 1)

	// Let several more inside samples go by.
	time.Sleep(50 * time.Millisecond)
	monitor.Stop()

	assert.Equal(t, 1, recorder.count(), "staying inside must not re-fire")
}

func TestMonitor_RefiresAfterExitAndReentry(t *testing.T) {
	source := &scriptedSource{positions: [][2]float64{
		{50.0, 10.0}, // inside
		{51.0, 10.0}, // outside, re-arms
		{50.0, 10.0}, // inside again
	}}
	recorder := &enterRecorder{}

	monitor := StartMonitor(source, []models.Center{testCenter()}, 5*time.Millisecond, recorder.record)
	waitForCount(t, recorder, 2)
	monitor.Stop()

	assert.Equal(t, []int{1, 1}, recorder.entries)
}

func TestMonitor_NoPositionNoEvent(t *testing.T) {
	source := &scriptedSource{}
	recorder := &enterRecorder{}

	monitor := StartMonitor(source, []models.Center{testCenter()}, 5*time.Millisecond, recorder.record)
	time.Sleep(50 * time.Millisecond)
	monitor.Stop()

	assert.Equal(t, 0, recorder.count())
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	source := &scriptedSource{positions: [][2]float64{{51.0, 10.0}}}
	monitor := StartMonitor(source, []models.Center{testCenter()}, 5*time.Millisecond, func(models.Center) {})

	monitor.Stop()
	assert.NotPanics(t, func() { monitor.Stop() })
}

func TestMonitorManager_RefusesDuplicateStart(t *testing.T) {
	manager := NewMonitorManager()
	source := &scriptedSource{positions: [][2]float64{{51.0, 10.0}}}
	noop := func(models.Center) {}

	err := manager.Start(7, source, []models.Center{testCenter()}, 5*time.Millisecond, noop)
	require.NoError(t, err)

	err = manager.Start(7, source, []models.Center{testCenter()}, 5*time.Millisecond, noop)
	assert.ErrorIs(t, err, ErrMonitorRunning)

	require.NoError(t, manager.Stop(7))
}

func TestMonitorManager_StopUnknownVolunteer(t *testing.T) {
	manager := NewMonitorManager()
	assert.ErrorIs(t, manager.Stop(7), ErrMonitorNotRunning)
}

func TestMonitorManager_StartAfterStop(t *testing.T) {
	manager := NewMonitorManager()
	source := &scriptedSource{positions: [][2]float64{{51.0, 10.0}}}
	noop := func(models.Center) {}

	require.NoError(t, manager.Start(7, source, []models.Center{testCenter()}, 5*time.Millisecond, noop))
	require.NoError(t, manager.Stop(7))
	assert.NoError(t, manager.Start(7, source, []models.Center{testCenter()}, 5*time.Millisecond, noop))

	manager.StopAll()
}
