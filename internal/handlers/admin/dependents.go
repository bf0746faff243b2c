// internal/handlers/admin/dependents.go
//
// Guardians (parent role) manage dependent volunteer records linked
// via managed_by.
package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/careshare/csh_backendl/internal/middleware"
	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
)

func CreateDependentHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardianID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		var body struct {
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Age       *int   `json:"age,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.Email == "" || body.FirstName == "" || body.LastName == "" {
			response.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		dependent := &models.Volunteer{
			Email:     body.Email,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Age:       body.Age,
			Role:      models.RoleVolunteer,
			Category:  models.CategoryStudent,
			ManagedBy: &guardianID,
			// Dependents still need admin approval like anyone else.
			IsApproved: false,
		}
		if err := repo.Create(r.Context(), dependent, ""); err != nil {
			log.Printf("Failed to create dependent for guardian %d: %v", guardianID, err)
			response.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		response.RespondWithJSON(w, http.StatusCreated, dependent)
	}
}

func ListDependentsHandler(repo *repositories.VolunteerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardianID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		dependents, err := repo.ListDependents(r.Context(), guardianID)
		if err != nil {
			log.Printf("DB error listing dependents for %d: %v", guardianID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if dependents == nil {
			dependents = []models.Volunteer{}
		}
		response.RespondWithJSON(w, http.StatusOK, dependents)
	}
}
