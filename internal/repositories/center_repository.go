// internal/repositories/center_repository.go
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/careshare/csh_backendl/internal/models"
)

var ErrCenterNotFound = errors.New("center not found")

type CenterRepository struct {
	db *sql.DB
}

func NewCenterRepository(db *sql.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

func (r *CenterRepository) List(ctx context.Context) ([]models.Center, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, latitude, longitude, radius FROM centers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	defer rows.Close()

	var centers []models.Center
	for rows.Next() {
		var c models.Center
		if err := rows.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude, &c.Radius); err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

func (r *CenterRepository) Create(ctx context.Context, c *models.Center) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO centers (name, latitude, longitude, radius)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET latitude = $2, longitude = $3, radius = $4
		RETURNING id
	`, c.Name, c.Latitude, c.Longitude, c.Radius).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert center: %w", err)
	}
	return nil
}

func (r *CenterRepository) Update(ctx context.Context, c *models.Center) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE centers SET name = $1, latitude = $2, longitude = $3, radius = $4 WHERE id = $5
	`, c.Name, c.Latitude, c.Longitude, c.Radius, c.ID)
	if err != nil {
		return fmt.Errorf("update center: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrCenterNotFound
	}
	return nil
}

func (r *CenterRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete center: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrCenterNotFound
	}
	return nil
}
