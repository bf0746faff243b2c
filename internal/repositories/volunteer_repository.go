// internal/repositories/volunteer_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/services/shift"
	"github.com/lib/pq"
)

type VolunteerRepository struct {
	db *sql.DB
}

func NewVolunteerRepository(db *sql.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

const volunteerColumns = `id, email, first_name, last_name, phone, age, role, category, is_approved, managed_by, created_at`

func scanVolunteer(row *sql.Row) (*models.Volunteer, error) {
	var v models.Volunteer
	err := row.Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.Phone, &v.Age,
		&v.Role, &v.Category, &v.IsApproved, &v.ManagedBy, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shift.ErrVolunteerNotFound
	} else if err != nil {
		return nil, fmt.Errorf("scan volunteer: %w", err)
	}
	return &v, nil
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id int) (*models.Volunteer, error) {
	return scanVolunteer(r.db.QueryRowContext(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1`, id))
}

func (r *VolunteerRepository) GetByEmail(ctx context.Context, email string) (*models.Volunteer, string, error) {
	var v models.Volunteer
	var passwordHash string
	err := r.db.QueryRowContext(ctx, `
		SELECT `+volunteerColumns+`, password_hash FROM volunteers WHERE email = $1
	`, email).Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.Phone, &v.Age,
		&v.Role, &v.Category, &v.IsApproved, &v.ManagedBy, &v.CreatedAt,
		&passwordHash,
	)
	if err == sql.ErrNoRows {
		return nil, "", shift.ErrVolunteerNotFound
	} else if err != nil {
		return nil, "", fmt.Errorf("select volunteer by email: %w", err)
	}
	return &v, passwordHash, nil
}

// Create inserts a new volunteer. Duplicate emails surface as an error
// from the unique constraint, not from a pre-read.
func (r *VolunteerRepository) Create(ctx context.Context, v *models.Volunteer, passwordHash string) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO volunteers (email, password_hash, first_name, last_name, phone, age, role, category, is_approved, managed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, v.Email, passwordHash, v.FirstName, v.LastName, v.Phone, v.Age,
		v.Role, v.Category, v.IsApproved, v.ManagedBy,
	).Scan(&v.ID, &v.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
		return fmt.Errorf("email already registered")
	}
	if err != nil {
		return fmt.Errorf("insert volunteer: %w", err)
	}
	return nil
}

func (r *VolunteerRepository) List(ctx context.Context) ([]models.Volunteer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	defer rows.Close()
	return scanVolunteers(rows)
}

// ListDependents returns the volunteers managed by the given guardian.
func (r *VolunteerRepository) ListDependents(ctx context.Context, guardianID int) ([]models.Volunteer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers WHERE managed_by = $1 ORDER BY first_name`, guardianID)
	if err != nil {
		return nil, fmt.Errorf("list dependents: %w", err)
	}
	defer rows.Close()
	return scanVolunteers(rows)
}

func (r *VolunteerRepository) SetApproved(ctx context.Context, id int, approved bool) error {
	return r.execOne(ctx, `UPDATE volunteers SET is_approved = $1 WHERE id = $2`, approved, id)
}

func (r *VolunteerRepository) SetRole(ctx context.Context, id int, role string) error {
	return r.execOne(ctx, `UPDATE volunteers SET role = $1 WHERE id = $2`, role, id)
}

func (r *VolunteerRepository) Delete(ctx context.Context, id int) error {
	return r.execOne(ctx, `DELETE FROM volunteers WHERE id = $1`, id)
}

func (r *VolunteerRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return shift.ErrVolunteerNotFound
	}
	return nil
}

func scanVolunteers(rows *sql.Rows) ([]models.Volunteer, error) {
	var result []models.Volunteer
	for rows.Next() {
		var v models.Volunteer
		if err := rows.Scan(
			&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.Phone, &v.Age,
			&v.Role, &v.Category, &v.IsApproved, &v.ManagedBy, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
