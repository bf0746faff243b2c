// internal/handlers/auth/profile.go
package auth

import (
	"net/http"

	"github.com/careshare/csh_backendl/internal/middleware"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
)

type ProfileHandler struct {
	volunteers *repositories.VolunteerRepository
}

func NewProfileHandler(volunteers *repositories.VolunteerRepository) *ProfileHandler {
	return &ProfileHandler{volunteers: volunteers}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	volunteer, err := h.volunteers.GetByID(r.Context(), userID)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	response.RespondWithJSON(w, http.StatusOK, volunteer)
}
