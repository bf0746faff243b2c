// internal/handlers/center/center_handler.go
package center

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	"github.com/go-chi/chi/v5"
)

func ListCentersHandler(repo *repositories.CenterRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		centers, err := repo.List(r.Context())
		if err != nil {
			log.Printf("DB error fetching centers: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if centers == nil {
			centers = []models.Center{}
		}
		response.RespondWithJSON(w, http.StatusOK, centers)
	}
}

func CreateCenterHandler(repo *repositories.CenterRepository, defaultRadius float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var center models.Center
		if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if center.Name == "" {
			response.RespondWithError(w, http.StatusBadRequest, "Center name is required")
			return
		}
		if center.Radius <= 0 {
			center.Radius = defaultRadius
		}

		if err := repo.Create(r.Context(), &center); err != nil {
			log.Printf("DB error creating center %q: %v", center.Name, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to create center")
			return
		}
		response.RespondWithJSON(w, http.StatusCreated, center)
	}
}

func UpdateCenterHandler(repo *repositories.CenterRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid center ID")
			return
		}

		var center models.Center
		if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		center.ID = id

		if err := repo.Update(r.Context(), &center); err != nil {
			if errors.Is(err, repositories.ErrCenterNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Center not found")
				return
			}
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to update center")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, center)
	}
}

func DeleteCenterHandler(repo *repositories.CenterRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid center ID")
			return
		}

		if err := repo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrCenterNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Center not found")
				return
			}
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to delete center")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
