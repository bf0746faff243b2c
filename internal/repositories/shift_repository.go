// internal/repositories/shift_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/services/shift"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// InsertActive relies on the uniq_active_shift partial index: the
// insert itself is the arbiter between concurrent check-ins, there is
// no existence query beforehand.
func (r *ShiftRepository) InsertActive(ctx context.Context, volunteerID int, activity string, start time.Time) (*models.Shift, error) {
	row := models.Shift{
		VolunteerID: volunteerID,
		Activity:    activity,
		Status:      models.ShiftActive,
		StartTime:   start,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shifts (volunteer_id, activity, status, start_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, volunteerID, activity, models.ShiftActive, start).Scan(&row.ID)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
		return nil, shift.ErrShiftAlreadyActive
	}
	if err != nil {
		return nil, fmt.Errorf("insert shift: %w", err)
	}
	return &row, nil
}

// CheckOut ends the shift only if it is still active. The row lock plus
// the status predicate make a concurrent double check-out lose cleanly
// with ErrShiftNotFound.
func (r *ShiftRepository) CheckOut(ctx context.Context, shiftID int, end time.Time) (*models.Shift, error) {
	return r.checkOutWhere(ctx, "id = $1 AND status = 'active'", shiftID, end)
}

// CheckOutActiveFor ends the volunteer's active shift, whichever id it has.
func (r *ShiftRepository) CheckOutActiveFor(ctx context.Context, volunteerID int, end time.Time) (*models.Shift, error) {
	return r.checkOutWhere(ctx, "volunteer_id = $1 AND status = 'active'", volunteerID, end)
}

func (r *ShiftRepository) checkOutWhere(ctx context.Context, where string, arg int, end time.Time) (*models.Shift, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback()

	var row models.Shift
	err = tx.QueryRowContext(ctx, `
		SELECT id, volunteer_id, activity, start_time
		FROM shifts WHERE `+where+`
		FOR UPDATE
	`, arg).Scan(&row.ID, &row.VolunteerID, &row.Activity, &row.StartTime)
	if err == sql.ErrNoRows {
		return nil, shift.ErrShiftNotFound
	} else if err != nil {
		return nil, fmt.Errorf("select active shift: %w", err)
	}

	hours := shift.HoursBetween(row.StartTime, end)
	_, err = tx.ExecContext(ctx, `
		UPDATE shifts SET end_time = $1, hours = $2, status = $3 WHERE id = $4
	`, end, hours, models.ShiftPendingReview, row.ID)
	if err != nil {
		return nil, fmt.Errorf("update shift %d: %w", row.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	row.EndTime = &end
	row.Hours = &hours
	row.Status = models.ShiftPendingReview
	return &row, nil
}

// Review is a conditional update: only pending_review rows can move to
// a terminal status.
func (r *ShiftRepository) Review(ctx context.Context, shiftID int, decision string) (*models.Shift, error) {
	var row models.Shift
	err := r.db.QueryRowContext(ctx, `
		UPDATE shifts SET status = $1
		WHERE id = $2 AND status = 'pending_review'
		RETURNING id, volunteer_id, activity, status, start_time, end_time, hours
	`, decision, shiftID).Scan(
		&row.ID, &row.VolunteerID, &row.Activity, &row.Status,
		&row.StartTime, &row.EndTime, &row.Hours,
	)
	if err == sql.ErrNoRows {
		return nil, shift.ErrShiftNotFound
	} else if err != nil {
		return nil, fmt.Errorf("review shift: %w", err)
	}
	return &row, nil
}

// ActiveFor returns the volunteer's active shift, or nil when there is none.
func (r *ShiftRepository) ActiveFor(ctx context.Context, volunteerID int) (*models.Shift, error) {
	var row models.Shift
	err := r.db.QueryRowContext(ctx, `
		SELECT id, volunteer_id, activity, status, start_time
		FROM shifts WHERE volunteer_id = $1 AND status = 'active'
	`, volunteerID).Scan(&row.ID, &row.VolunteerID, &row.Activity, &row.Status, &row.StartTime)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("select active shift: %w", err)
	}
	return &row, nil
}

// HistoryFor returns the volunteer's completed shifts, most recent first.
func (r *ShiftRepository) HistoryFor(ctx context.Context, volunteerID int) ([]models.Shift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, volunteer_id, activity, status, start_time, end_time, hours
		FROM shifts
		WHERE volunteer_id = $1 AND status <> 'active'
		ORDER BY start_time DESC
	`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("select shift history: %w", err)
	}
	defer rows.Close()
	return scanShifts(rows)
}

// ListByStatus returns shifts in the given status joined with volunteer
// names, most recent first. Used for the admin review queue and reports.
func (r *ShiftRepository) ListByStatus(ctx context.Context, status string) ([]models.ShiftRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.volunteer_id, s.activity, s.status, s.start_time, s.end_time, s.hours,
		       v.first_name || ' ' || v.last_name
		FROM shifts s
		JOIN volunteers v ON s.volunteer_id = v.id
		WHERE s.status = $1
		ORDER BY s.start_time DESC
	`, status)
	if err != nil {
		return nil, fmt.Errorf("select shifts by status: %w", err)
	}
	defer rows.Close()

	var result []models.ShiftRow
	for rows.Next() {
		var row models.ShiftRow
		if err := rows.Scan(
			&row.ID, &row.VolunteerID, &row.Activity, &row.Status,
			&row.StartTime, &row.EndTime, &row.Hours, &row.VolunteerName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanShifts(rows *sql.Rows) ([]models.Shift, error) {
	var result []models.Shift
	for rows.Next() {
		var row models.Shift
		if err := rows.Scan(
			&row.ID, &row.VolunteerID, &row.Activity, &row.Status,
			&row.StartTime, &row.EndTime, &row.Hours,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
