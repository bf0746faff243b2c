// internal/services/geo/geotrack.go
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const lastPositionTTL = 5 * time.Minute

// Broadcaster pushes live events to connected admin dashboards.
type Broadcaster interface {
	BroadcastLocation(loc models.LastLocation)
	BroadcastEnter(volunteerID int, center models.Center)
}

type GeoTrackService struct {
	posRepo *repositories.PositionRepository
	redis   *redis.Client
	hub     Broadcaster
}

func NewGeoTrackService(posRepo *repositories.PositionRepository, redisClient *redis.Client, hub Broadcaster) *GeoTrackService {
	return &GeoTrackService{
		posRepo: posRepo,
		redis:   redisClient,
		hub:     hub,
	}
}

// HandleUpdate persists a position sample and mirrors it into redis
// for the live map and the geofence monitors.
func (s *GeoTrackService) HandleUpdate(ctx context.Context, update *models.GeoUpdate) error {
	if err := s.posRepo.Save(ctx, update); err != nil {
		log.Printf("❌ Failed to save position: %v", err)
		return err
	}

	key := lastPositionKey(update.VolunteerID)
	data, _ := json.Marshal(models.LastLocation{
		VolunteerID: update.VolunteerID,
		Lat:         update.Lat,
		Lon:         update.Lon,
		Ts:          update.CreatedAt,
	})
	if err := s.redis.Set(ctx, key, data, lastPositionTTL).Err(); err != nil {
		log.Printf("❌ Failed to update redis: %v", err)
		return err
	}

	if err := s.redis.SAdd(ctx, "active_volunteers", strconv.Itoa(update.VolunteerID)).Err(); err != nil {
		log.Printf("⚠️ Redis SAdd warning: %v", err)
	}
	if err := s.redis.Expire(ctx, "active_volunteers", lastPositionTTL).Err(); err != nil {
		log.Printf("⚠️ Redis Expire warning: %v", err)
	}

	if s.hub != nil {
		s.hub.BroadcastLocation(models.LastLocation{
			VolunteerID: update.VolunteerID,
			Lat:         update.Lat,
			Lon:         update.Lon,
			Ts:          update.CreatedAt,
		})
	}
	return nil
}

func (s *GeoTrackService) GetLastLocations(ctx context.Context) ([]models.LastLocation, error) {
	return s.posRepo.GetLastPositions(ctx)
}

// GetTrack returns the stored position samples of one volunteer in the
// given time range.
func (s *GeoTrackService) GetTrack(ctx context.Context, volunteerID int, from, to time.Time) ([]models.GeoUpdate, error) {
	return s.posRepo.GetHistory(ctx, volunteerID, from, to)
}

// PrunePresence drops volunteers from the presence set whose last
// position entry has already expired.
func (s *GeoTrackService) PrunePresence(ctx context.Context) {
	ids, err := s.redis.SMembers(ctx, "active_volunteers").Result()
	if err != nil {
		log.Printf("⚠️ Presence prune failed: %v", err)
		return
	}
	for _, id := range ids {
		volunteerID, err := strconv.Atoi(id)
		if err != nil {
			s.redis.SRem(ctx, "active_volunteers", id)
			continue
		}
		exists, err := s.redis.Exists(ctx, lastPositionKey(volunteerID)).Result()
		if err == nil && exists == 0 {
			s.redis.SRem(ctx, "active_volunteers", id)
		}
	}
}

// LastPositionSource adapts the redis last-position mirror into a
// PositionSource for one volunteer's geofence monitor.
func (s *GeoTrackService) LastPositionSource(volunteerID int) PositionSource {
	return &redisSource{redis: s.redis, volunteerID: volunteerID}
}

// NotifyEnter forwards a geofence entry to the live hub.
func (s *GeoTrackService) NotifyEnter(volunteerID int, center models.Center) {
	log.Printf("📍 Volunteer %d entered %q", volunteerID, center.Name)
	if s.hub != nil {
		s.hub.BroadcastEnter(volunteerID, center)
	}
}

type redisSource struct {
	redis       *redis.Client
	volunteerID int
}

func (r *redisSource) Current(ctx context.Context) (float64, float64, bool, error) {
	data, err := r.redis.Get(ctx, lastPositionKey(r.volunteerID)).Bytes()
	if err == redis.Nil {
		return 0, 0, false, nil
	} else if err != nil {
		return 0, 0, false, fmt.Errorf("read last position: %w", err)
	}

	var loc models.LastLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		return 0, 0, false, fmt.Errorf("corrupt last position entry: %w", err)
	}
	return loc.Lat, loc.Lon, true, nil
}

func lastPositionKey(volunteerID int) string {
	return "last:" + strconv.Itoa(volunteerID)
}
