// internal/handlers/shift/review_handler.go
package shift

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	shiftService "github.com/careshare/csh_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

// PendingShiftsHandler lists the admin review queue.
func PendingShiftsHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := repo.ListByStatus(r.Context(), models.ShiftPendingReview)
		if err != nil {
			log.Printf("DB error fetching pending shifts: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if pending == nil {
			pending = []models.ShiftRow{}
		}
		response.RespondWithJSON(w, http.StatusOK, pending)
	}
}

// ReviewShiftHandler moves a pending shift to approved or rejected.
func ReviewShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := strconv.Atoi(chi.URLParam(r, "shiftID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid shift ID")
			return
		}

		var body struct {
			Decision string `json:"decision"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		reviewed, err := svc.Review(r.Context(), shiftID, body.Decision)
		switch {
		case errors.Is(err, shiftService.ErrInvalidDecision):
			response.RespondWithError(w, http.StatusBadRequest, "Decision must be approved or rejected")
		case errors.Is(err, shiftService.ErrShiftNotFound):
			response.RespondWithError(w, http.StatusNotFound, "Shift not found or not pending review")
		case err != nil:
			log.Printf("DB error reviewing shift %d: %v", shiftID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		default:
			response.RespondWithJSON(w, http.StatusOK, reviewed)
		}
	}
}

// ForceEndShiftHandler lets an admin end a volunteer's active shift,
// e.g. when someone forgot to check out. The result still lands in
// pending_review like a normal check-out.
func ForceEndShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		volunteerID, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		ended, err := svc.CheckOutVolunteer(r.Context(), volunteerID)
		if errors.Is(err, shiftService.ErrShiftNotFound) {
			response.RespondWithError(w, http.StatusNotFound, "No active shift for volunteer")
			return
		} else if err != nil {
			log.Printf("DB error force-ending shift for user %d: %v", volunteerID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Shift ended",
			"shift":   ended,
		})
	}
}
