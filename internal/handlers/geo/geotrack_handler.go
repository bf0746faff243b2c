// internal/handlers/geo/geotrack_handler.go
package geo

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/careshare/csh_backendl/internal/middleware"
	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	geoService "github.com/careshare/csh_backendl/internal/services/geo"
	"github.com/go-chi/chi/v5"
)

type GeoTrackHandler struct {
	svc      *geoService.GeoTrackService
	monitors *geoService.MonitorManager
	centers  *repositories.CenterRepository
	interval time.Duration
}

func NewGeoTrackHandler(svc *geoService.GeoTrackService, monitors *geoService.MonitorManager, centers *repositories.CenterRepository, interval time.Duration) *GeoTrackHandler {
	return &GeoTrackHandler{
		svc:      svc,
		monitors: monitors,
		centers:  centers,
		interval: interval,
	}
}

// PostGeo ingests a position sample from the mobile client.
func (h *GeoTrackHandler) PostGeo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var update models.GeoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	update.VolunteerID = userID

	if err := h.svc.HandleUpdate(r.Context(), &update); err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to save position")
		return
	}
	response.RespondWithJSON(w, http.StatusCreated, update)
}

// GetLast returns the last known positions for the admin live map.
func (h *GeoTrackHandler) GetLast(w http.ResponseWriter, r *http.Request) {
	locations, err := h.svc.GetLastLocations(r.Context())
	if err != nil {
		log.Printf("DB error fetching last positions: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if locations == nil {
		locations = []models.LastLocation{}
	}
	response.RespondWithJSON(w, http.StatusOK, locations)
}

// GetUserTrack returns one volunteer's position history for the
// requested time range, defaulting to the last 24 hours.
func (h *GeoTrackHandler) GetUserTrack(w http.ResponseWriter, r *http.Request) {
	volunteerID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	to := time.Now()
	from := to.Add(-24 * time.Hour)
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid from timestamp")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid to timestamp")
			return
		}
		to = parsed
	}

	track, err := h.svc.GetTrack(r.Context(), volunteerID, from, to)
	if err != nil {
		log.Printf("DB error fetching track for user %d: %v", volunteerID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if track == nil {
		track = []models.GeoUpdate{}
	}
	response.RespondWithJSON(w, http.StatusOK, track)
}

// StartMonitor begins geofence watching for the caller. A second start
// without a stop is a conflict, not a silent duplicate sampler.
func (h *GeoTrackHandler) StartMonitor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	centers, err := h.centers.List(r.Context())
	if err != nil {
		log.Printf("DB error fetching centers for monitor: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(centers) == 0 {
		response.RespondWithError(w, http.StatusBadRequest, "No centers configured")
		return
	}

	source := h.svc.LastPositionSource(userID)
	onEnter := func(center models.Center) {
		h.svc.NotifyEnter(userID, center)
	}
	err = h.monitors.Start(userID, source, centers, h.interval, onEnter)
	if errors.Is(err, geoService.ErrMonitorRunning) {
		response.RespondWithError(w, http.StatusConflict, "Monitor already running")
		return
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to start monitor")
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "monitoring",
		"centers": len(centers),
	})
}

// StopMonitor releases the caller's geofence watcher.
func (h *GeoTrackHandler) StopMonitor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	err := h.monitors.Stop(userID)
	if errors.Is(err, geoService.ErrMonitorNotRunning) {
		response.RespondWithError(w, http.StatusNotFound, "No monitor running")
		return
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to stop monitor")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}
