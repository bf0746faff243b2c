// internal/handlers/admin/admin_users.go
package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	"github.com/careshare/csh_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

func ListVolunteersHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		volunteers, err := repo.List(r.Context())
		if err != nil {
			log.Printf("DB error listing volunteers: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if volunteers == nil {
			volunteers = []models.Volunteer{}
		}
		response.RespondWithJSON(w, http.StatusOK, volunteers)
	}
}

// ApproveVolunteerHandler flips the approval flag. Welcome email is an
// external collaborator; here it is just a log line.
func ApproveVolunteerHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var body struct {
			Approved bool `json:"approved"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		if err := repo.SetApproved(r.Context(), id, body.Approved); err != nil {
			if errors.Is(err, shift.ErrVolunteerNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Volunteer not found")
				return
			}
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if body.Approved {
			log.Printf("✅ Volunteer %d approved", id)
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"id":       id,
			"approved": body.Approved,
		})
	}
}

func UpdateUserRoleHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var body struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if !models.ValidRole(body.Role) {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid role: "+body.Role)
			return
		}

		if err := repo.SetRole(r.Context(), id, body.Role); err != nil {
			if errors.Is(err, shift.ErrVolunteerNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Volunteer not found")
				return
			}
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"id":   id,
			"role": body.Role,
		})
	}
}

func DeleteVolunteerHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, shift.ErrVolunteerNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Volunteer not found")
				return
			}
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
