package shift

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore implements Store with the same conditional-write contract
// the Postgres repository provides: the insert is the arbiter for the
// one-active-shift rule, and transitions check the current status.
type memStore struct {
	mu     sync.Mutex
	nextID int
	shifts map[int]*models.Shift
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, shifts: make(map[int]*models.Shift)}
}

func (s *memStore) InsertActive(ctx context.Context, volunteerID int, activity string, start time.Time) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shifts {
		if existing.VolunteerID == volunteerID && existing.Status == models.ShiftActive {
			return nil, ErrShiftAlreadyActive
		}
	}

	row := &models.Shift{
		ID:          s.nextID,
		VolunteerID: volunteerID,
		Activity:    activity,
		Status:      models.ShiftActive,
		StartTime:   start,
	}
	s.nextID++
	s.shifts[row.ID] = row
	copied := *row
	return &copied, nil
}

func (s *memStore) CheckOut(ctx context.Context, shiftID int, end time.Time) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.shifts[shiftID]
	if !ok || row.Status != models.ShiftActive {
		return nil, ErrShiftNotFound
	}
	return s.complete(row, end), nil
}

func (s *memStore) CheckOutActiveFor(ctx context.Context, volunteerID int, end time.Time) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.shifts {
		if row.VolunteerID == volunteerID && row.Status == models.ShiftActive {
			return s.complete(row, end), nil
		}
	}
	return nil, ErrShiftNotFound
}

func (s *memStore) complete(row *models.Shift, end time.Time) *models.Shift {
	hours := HoursBetween(row.StartTime, end)
	row.EndTime = &end
	row.Hours = &hours
	row.Status = models.ShiftPendingReview
	copied := *row
	return &copied
}

func (s *memStore) Review(ctx context.Context, shiftID int, decision string) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.shifts[shiftID]
	if !ok || row.Status != models.ShiftPendingReview {
		return nil, ErrShiftNotFound
	}
	row.Status = decision
	copied := *row
	return &copied, nil
}

type memVolunteers struct {
	volunteers map[int]*models.Volunteer
}

func (s *memVolunteers) GetByID(ctx context.Context, id int) (*models.Volunteer, error) {
	v, ok := s.volunteers[id]
	if !ok {
		return nil, ErrVolunteerNotFound
	}
	return v, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	volunteers := &memVolunteers{volunteers: map[int]*models.Volunteer{
		1: {ID: 1, Role: models.RoleVolunteer, IsApproved: true},
		2: {ID: 2, Role: models.RoleVolunteer, IsApproved: true},
		3: {ID: 3, Role: models.RoleVolunteer, IsApproved: false},
	}}
	return NewService(store, volunteers), store
}

func TestCheckIn_CreatesActiveShift(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftActive, started.Status)
	assert.Equal(t, 1, started.VolunteerID)
	assert.Nil(t, started.Hours)
	assert.Nil(t, started.EndTime)
}

func TestCheckIn_SecondCheckInFails(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), 1, models.ActivityDistribution)
	assert.ErrorIs(t, err, ErrShiftAlreadyActive)
}

func TestCheckIn_ConcurrentAttemptsOneWinner(t *testing.T) {
	svc, _ := newTestService()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrShiftAlreadyActive)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent check-in must win")
}

func TestCheckIn_InvalidActivity(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 1, "skydiving")
	assert.ErrorIs(t, err, ErrInvalidActivity)
}

func TestCheckIn_UnapprovedVolunteer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 3, models.ActivitySandwichMaking)
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestCheckIn_UnknownVolunteer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 99, models.ActivitySandwichMaking)
	assert.ErrorIs(t, err, ErrVolunteerNotFound)
}

func TestCheckOut_ComputesHoursAndStatus(t *testing.T) {
	svc, _ := newTestService()

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	started, err := svc.CheckIn(context.Background(), 1, models.ActivityDistribution)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(90 * time.Minute) }
	ended, err := svc.CheckOut(context.Background(), started.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ShiftPendingReview, ended.Status)
	require.NotNil(t, ended.Hours)
	assert.Equal(t, 1.5, *ended.Hours)
	require.NotNil(t, ended.EndTime)
}

func TestCheckOut_UnknownShift(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckOut(context.Background(), 42)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestCheckOut_AlreadyEndedShift(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), started.ID)
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), started.ID)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestCheckOut_AllowsNewCheckIn(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), started.ID)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), 1, models.ActivityDistribution)
	assert.NoError(t, err)
}

func TestCheckOutGroup_PartialSuccess(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 1, models.ActivityParentDropoff)
	require.NoError(t, err)

	results := svc.CheckOutGroup(context.Background(), []int{1, 2})
	require.Len(t, results, 2)

	assert.Empty(t, results[0].Error)
	require.NotNil(t, results[0].Shift)
	assert.Equal(t, models.ShiftPendingReview, results[0].Shift.Status)

	// Volunteer 2 had no active shift.
	assert.NotEmpty(t, results[1].Error)
	assert.Nil(t, results[1].Shift)
}

func TestReview_ApprovesPendingShift(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), started.ID)
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), started.ID, models.ShiftApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftApproved, reviewed.Status)
}

func TestReview_TerminalStatusCannotMove(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), started.ID)
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), started.ID, models.ShiftRejected)
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), started.ID, models.ShiftApproved)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestReview_ActiveShiftCannotBeReviewed(t *testing.T) {
	svc, _ := newTestService()

	started, err := svc.CheckIn(context.Background(), 1, models.ActivitySandwichMaking)
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), started.ID, models.ShiftApproved)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestReview_InvalidDecision(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Review(context.Background(), 1, "maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
