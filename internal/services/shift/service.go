// internal/services/shift/service.go
//
// Shift lifecycle: active -> pending_review -> approved | rejected.
// The store guarantees at most one active shift per volunteer; the
// service never does a read-then-write existence check.
package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
)

var (
	ErrShiftAlreadyActive = errors.New("volunteer already has an active shift")
	ErrShiftNotFound      = errors.New("shift not found or not in expected status")
	ErrVolunteerNotFound  = errors.New("volunteer not found")
	ErrNotApproved        = errors.New("volunteer is not approved")
	ErrInvalidActivity    = errors.New("invalid activity type")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
)

// Store is the shift persistence contract. InsertActive must fail with
// ErrShiftAlreadyActive when the volunteer already has an active shift;
// the conditional methods must fail with ErrShiftNotFound when the row
// is missing or not in the required status.
type Store interface {
	InsertActive(ctx context.Context, volunteerID int, activity string, start time.Time) (*models.Shift, error)
	CheckOut(ctx context.Context, shiftID int, end time.Time) (*models.Shift, error)
	CheckOutActiveFor(ctx context.Context, volunteerID int, end time.Time) (*models.Shift, error)
	Review(ctx context.Context, shiftID int, decision string) (*models.Shift, error)
}

type VolunteerStore interface {
	GetByID(ctx context.Context, id int) (*models.Volunteer, error)
}

type Service struct {
	store      Store
	volunteers VolunteerStore
	now        func() time.Time
}

func NewService(store Store, volunteers VolunteerStore) *Service {
	return &Service{
		store:      store,
		volunteers: volunteers,
		now:        time.Now,
	}
}

// CheckIn opens a new active shift. Uniqueness of the active shift is
// enforced by the store on insert, so two concurrent check-ins resolve
// to exactly one winner.
func (s *Service) CheckIn(ctx context.Context, volunteerID int, activity string) (*models.Shift, error) {
	if !models.ValidActivity(activity) {
		return nil, ErrInvalidActivity
	}

	volunteer, err := s.volunteers.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if !volunteer.IsApproved {
		return nil, ErrNotApproved
	}

	return s.store.InsertActive(ctx, volunteerID, activity, s.now())
}

// CheckOut closes an active shift, computing worked hours and moving
// it to pending_review.
func (s *Service) CheckOut(ctx context.Context, shiftID int) (*models.Shift, error) {
	return s.store.CheckOut(ctx, shiftID, s.now())
}

// CheckOutVolunteer ends the volunteer's active shift regardless of
// the shift id. Used by the admin force-end endpoint.
func (s *Service) CheckOutVolunteer(ctx context.Context, volunteerID int) (*models.Shift, error) {
	return s.store.CheckOutActiveFor(ctx, volunteerID, s.now())
}

// GroupResult is the per-volunteer outcome of a group check-out.
type GroupResult struct {
	VolunteerID int           `json:"volunteer_id"`
	Shift       *models.Shift `json:"shift,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// CheckOutGroup ends the active shift of every listed volunteer.
// Failures are reported per volunteer instead of aborting the batch.
func (s *Service) CheckOutGroup(ctx context.Context, volunteerIDs []int) []GroupResult {
	results := make([]GroupResult, 0, len(volunteerIDs))
	for _, id := range volunteerIDs {
		ended, err := s.store.CheckOutActiveFor(ctx, id, s.now())
		result := GroupResult{VolunteerID: id, Shift: ended}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// Review moves a pending_review shift into its terminal status.
func (s *Service) Review(ctx context.Context, shiftID int, decision string) (*models.Shift, error) {
	if decision != models.ShiftApproved && decision != models.ShiftRejected {
		return nil, ErrInvalidDecision
	}
	reviewed, err := s.store.Review(ctx, shiftID, decision)
	if err != nil {
		return nil, fmt.Errorf("review shift %d: %w", shiftID, err)
	}
	return reviewed, nil
}
