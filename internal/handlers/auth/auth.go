// internal/handlers/auth/auth.go
package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	authService "github.com/careshare/csh_backendl/internal/services/auth"
	"github.com/careshare/csh_backendl/internal/services/shift"
)

type AuthHandler struct {
	volunteers *repositories.VolunteerRepository
	jwtService *authService.JWTService
}

func NewAuthHandler(volunteers *repositories.VolunteerRepository, jwtService *authService.JWTService) *AuthHandler {
	return &AuthHandler{
		volunteers: volunteers,
		jwtService: jwtService,
	}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var regData struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Age       *int   `json:"age,omitempty"`
		Category  string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&regData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if regData.Email == "" || regData.Password == "" || regData.FirstName == "" || regData.LastName == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if regData.Category == "" {
		regData.Category = models.CategoryAdult
	}
	if !models.ValidCategory(regData.Category) {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid category: "+regData.Category)
		return
	}

	passwordHash, err := authService.HashPassword(regData.Password)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := models.RoleVolunteer
	if regData.Category == models.CategoryParent {
		role = models.RoleParent
	}

	volunteer := &models.Volunteer{
		Email:     regData.Email,
		FirstName: regData.FirstName,
		LastName:  regData.LastName,
		Phone:     regData.Phone,
		Age:       regData.Age,
		Role:      role,
		Category:  regData.Category,
		// New accounts wait for admin approval before they can check in.
		IsApproved: false,
	}
	if err := h.volunteers.Create(r.Context(), volunteer, passwordHash); err != nil {
		log.Printf("Failed to register %s: %v", regData.Email, err)
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, volunteer)
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	volunteer, passwordHash, err := h.volunteers.GetByEmail(r.Context(), loginData.Email)
	if errors.Is(err, shift.ErrVolunteerNotFound) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	} else if err != nil {
		log.Printf("DB error on login for %s: %v", loginData.Email, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !authService.CheckPassword(passwordHash, loginData.Password) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := h.jwtService.GenerateToken(volunteer.ID, volunteer.Email, volunteer.Role)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", loginData.Email, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"volunteer":     volunteer,
	})
}

func (h *AuthHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if body.RefreshToken == "" {
		response.RespondWithError(w, http.StatusUnauthorized, "Refresh token required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(body.RefreshToken)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	volunteer, err := h.volunteers.GetByID(r.Context(), userID)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "User not found")
		return
	}

	// Rotate: old token is revoked, a fresh pair is issued.
	if err := h.jwtService.RevokeRefreshToken(body.RefreshToken); err != nil {
		log.Printf("Failed to revoke refresh token: %v", err)
	}
	accessToken, refreshToken, err := h.jwtService.GenerateToken(volunteer.ID, volunteer.Email, volunteer.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.RefreshToken != "" {
		if err := h.jwtService.RevokeRefreshToken(body.RefreshToken); err != nil {
			log.Printf("Failed to revoke refresh token on logout: %v", err)
		}
	}
	response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
