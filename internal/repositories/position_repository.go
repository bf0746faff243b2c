// internal/repositories/position_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
)

type PositionRepository struct {
	db *sql.DB
}

func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Save(ctx context.Context, pos *models.GeoUpdate) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO positions (volunteer_id, lat, lon, accuracy, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, pos.VolunteerID, pos.Lat, pos.Lon, pos.Accuracy, time.Now()).Scan(&pos.ID, &pos.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (r *PositionRepository) GetLastPositions(ctx context.Context) ([]models.LastLocation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ON (volunteer_id) volunteer_id, lat, lon, created_at AS ts
		FROM positions
		WHERE created_at > NOW() - INTERVAL '5 minutes'
		ORDER BY volunteer_id, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select last positions: %w", err)
	}
	defer rows.Close()

	var result []models.LastLocation
	for rows.Next() {
		var loc models.LastLocation
		if err := rows.Scan(&loc.VolunteerID, &loc.Lat, &loc.Lon, &loc.Ts); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}

func (r *PositionRepository) GetHistory(ctx context.Context, volunteerID int, from, to time.Time) ([]models.GeoUpdate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, volunteer_id, lat, lon, accuracy, created_at
		FROM positions
		WHERE volunteer_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at ASC
	`, volunteerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("select position history: %w", err)
	}
	defer rows.Close()

	var updates []models.GeoUpdate
	for rows.Next() {
		var u models.GeoUpdate
		if err := rows.Scan(&u.ID, &u.VolunteerID, &u.Lat, &u.Lon, &u.Accuracy, &u.CreatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
