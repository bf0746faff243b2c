// internal/handlers/shift/shift_handler.go
package shift

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/careshare/csh_backendl/internal/middleware"
	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	shiftService "github.com/careshare/csh_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

func CheckInHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		var body struct {
			Activity string `json:"activity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		started, err := svc.CheckIn(r.Context(), userID, body.Activity)
		switch {
		case errors.Is(err, shiftService.ErrShiftAlreadyActive):
			response.RespondWithError(w, http.StatusConflict, "Shift already active")
		case errors.Is(err, shiftService.ErrInvalidActivity):
			response.RespondWithError(w, http.StatusBadRequest, "Invalid activity: "+body.Activity)
		case errors.Is(err, shiftService.ErrNotApproved):
			response.RespondWithError(w, http.StatusForbidden, "Volunteer not approved yet")
		case errors.Is(err, shiftService.ErrVolunteerNotFound):
			response.RespondWithError(w, http.StatusNotFound, "Volunteer not found")
		case err != nil:
			log.Printf("DB error on check-in for user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		default:
			response.RespondWithJSON(w, http.StatusCreated, started)
		}
	}
}

func CheckOutHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		// Check-out targets the caller's own active shift.
		ended, err := svc.CheckOutVolunteer(r.Context(), userID)
		if errors.Is(err, shiftService.ErrShiftNotFound) {
			response.RespondWithError(w, http.StatusNotFound, "No active shift found")
			return
		} else if err != nil {
			log.Printf("DB error on check-out for user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, ended)
	}
}

// CheckOutByIDHandler ends a specific shift. The conditional update in
// the store rejects anything that is not active.
func CheckOutByIDHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := strconv.Atoi(chi.URLParam(r, "shiftID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid shift ID")
			return
		}

		ended, err := svc.CheckOut(r.Context(), shiftID)
		if errors.Is(err, shiftService.ErrShiftNotFound) {
			response.RespondWithError(w, http.StatusNotFound, "Shift not found or not active")
			return
		} else if err != nil {
			log.Printf("DB error on check-out for shift %d: %v", shiftID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, ended)
	}
}

func GroupCheckOutHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			VolunteerIDs []int `json:"volunteer_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.VolunteerIDs) == 0 {
			response.RespondWithError(w, http.StatusBadRequest, "volunteer_ids is required")
			return
		}

		results := svc.CheckOutGroup(r.Context(), body.VolunteerIDs)
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"results": results,
		})
	}
}

func GetActiveShiftHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		active, err := repo.ActiveFor(r.Context(), userID)
		if err != nil {
			log.Printf("DB error fetching active shift for user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		// null when there is no active shift, matching the mobile client.
		response.RespondWithJSON(w, http.StatusOK, active)
	}
}

func GetShiftsHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		shifts, err := repo.HistoryFor(r.Context(), userID)
		if err != nil {
			log.Printf("DB error fetching shifts for user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
			return
		}
		if shifts == nil {
			shifts = []models.Shift{}
		}
		response.RespondWithJSON(w, http.StatusOK, shifts)
	}
}

func GetUserShiftsByIDHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		shifts, err := repo.HistoryFor(r.Context(), targetID)
		if err != nil {
			log.Printf("DB error fetching shifts for user %d: %v", targetID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
			return
		}
		if shifts == nil {
			shifts = []models.Shift{}
		}
		response.RespondWithJSON(w, http.StatusOK, shifts)
	}
}
