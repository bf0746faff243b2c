package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/careshare/csh_backendl/config"
	"github.com/careshare/csh_backendl/db"
	"github.com/careshare/csh_backendl/internal/pkg/authz"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"

	appMiddleware "github.com/careshare/csh_backendl/internal/middleware"
	authService "github.com/careshare/csh_backendl/internal/services/auth"
	geoService "github.com/careshare/csh_backendl/internal/services/geo"
	shiftService "github.com/careshare/csh_backendl/internal/services/shift"
	wsService "github.com/careshare/csh_backendl/internal/services/ws"

	adminHandlers "github.com/careshare/csh_backendl/internal/handlers/admin"
	authHandlers "github.com/careshare/csh_backendl/internal/handlers/auth"
	centerHandlers "github.com/careshare/csh_backendl/internal/handlers/center"
	geoHandlers "github.com/careshare/csh_backendl/internal/handlers/geo"
	reportHandlers "github.com/careshare/csh_backendl/internal/handlers/report"
	shiftHandlers "github.com/careshare/csh_backendl/internal/handlers/shift"
	wsHandlers "github.com/careshare/csh_backendl/internal/handlers/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg := config.NewConfig()
	database := db.InitDB(cfg.DatabaseDSN)
	defer database.Close()

	redisClient := config.NewRedisClient()
	defer redisClient.Close()

	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)
	jwtService := authService.NewJWTService(cfg.JwtSecret, redisClient)

	volunteerRepo := repositories.NewVolunteerRepository(database)
	shiftRepo := repositories.NewShiftRepository(database)
	centerRepo := repositories.NewCenterRepository(database)
	positionRepo := repositories.NewPositionRepository(database)

	hub := wsService.NewHub()
	geoSvc := geoService.NewGeoTrackService(positionRepo, redisClient, hub)
	monitors := geoService.NewMonitorManager()
	defer monitors.StopAll()

	shiftSvc := shiftService.NewService(shiftRepo, volunteerRepo)

	// Background janitor keeps the redis presence set in step with the
	// expiring last-position keys.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			geoSvc.PrunePresence(context.Background())
		}
	}()

	monitorInterval := time.Duration(cfg.MonitorIntervalMs) * time.Millisecond
	authHandler := authHandlers.NewAuthHandler(volunteerRepo, jwtService)
	profileHandler := authHandlers.NewProfileHandler(volunteerRepo)
	geoHandler := geoHandlers.NewGeoTrackHandler(geoSvc, monitors, centerRepo, monitorInterval)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(appMiddleware.AddUserIDToContext())

	// Public routes
	router.Post("/api/auth/register", authHandler.RegisterHandler)
	router.Post("/api/auth/login", authHandler.LoginHandler)
	router.Post("/api/auth/refresh", authHandler.RefreshTokenHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Get("/api/profile", profileHandler.GetProfile)
		r.Post("/api/logout", authHandler.LogoutHandler)

		r.Post("/api/shifts/check-in", shiftHandlers.CheckInHandler(shiftSvc))
		r.Post("/api/shifts/check-out", shiftHandlers.CheckOutHandler(shiftSvc))
		r.Post("/api/shifts/{shiftID}/check-out", shiftHandlers.CheckOutByIDHandler(shiftSvc))
		r.Get("/api/shifts/active", shiftHandlers.GetActiveShiftHandler(shiftRepo))
		r.Get("/api/shifts", shiftHandlers.GetShiftsHandler(shiftRepo))

		r.Get("/api/centers", centerHandlers.ListCentersHandler(centerRepo))

		r.Post("/api/geo", geoHandler.PostGeo)
		r.Post("/api/geo/monitor/start", geoHandler.StartMonitor)
		r.Post("/api/geo/monitor/stop", geoHandler.StopMonitor)

		// Guardians manage their dependents
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireCapability(authz.CanManageDependents))

			r.Post("/api/dependents", adminHandlers.CreateDependentHandler(volunteerRepo))
			r.Get("/api/dependents", adminHandlers.ListDependentsHandler(volunteerRepo))
		})

		// Shift review and reports
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireCapability(authz.CanReviewShifts))

			r.Get("/api/admin/shifts/pending", shiftHandlers.PendingShiftsHandler(shiftRepo))
			r.Post("/api/admin/shifts/{shiftID}/review", shiftHandlers.ReviewShiftHandler(shiftSvc))
			r.Post("/api/admin/shifts/group-check-out", shiftHandlers.GroupCheckOutHandler(shiftSvc))
			r.Post("/api/admin/users/{userID}/end-shift", shiftHandlers.ForceEndShiftHandler(shiftSvc))
			r.Get("/api/admin/users/{userID}/shifts", shiftHandlers.GetUserShiftsByIDHandler(shiftRepo))
			r.Get("/api/admin/reports/summary", reportHandlers.SummaryHandler(shiftRepo))
			r.Get("/api/admin/reports/export", reportHandlers.ExportHandler(shiftRepo))
		})

		// Live map
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireCapability(authz.CanViewLiveMap))

			r.Get("/api/geo/last", geoHandler.GetLast)
			r.Get("/api/admin/users/{userID}/geo/history", geoHandler.GetUserTrack)
			r.Get("/ws", wsHandlers.ServeWS(hub))
		})

		// Superadmin routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireCapability(authz.CanManageUsers))

			r.Get("/api/admin/users", adminHandlers.ListVolunteersHandler(volunteerRepo))
			r.Patch("/api/admin/users/{userID}/approve", adminHandlers.ApproveVolunteerHandler(volunteerRepo))
			r.Patch("/api/admin/users/{userID}/role", adminHandlers.UpdateUserRoleHandler(volunteerRepo))
			r.Delete("/api/admin/users/{userID}", adminHandlers.DeleteVolunteerHandler(volunteerRepo))
		})

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireCapability(authz.CanManageCenters))

			r.Post("/api/admin/centers", centerHandlers.CreateCenterHandler(centerRepo, cfg.DefaultRadius))
			r.Put("/api/admin/centers/{id}", centerHandlers.UpdateCenterHandler(centerRepo))
			r.Delete("/api/admin/centers/{id}", centerHandlers.DeleteCenterHandler(centerRepo))
			r.Post("/api/admin/centers/import", centerHandlers.ImportCentersHandler(centerRepo, cfg.DefaultRadius))
		})
	})

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("🚀 Server starting on %s", serverAddress)
	log.Fatal(http.ListenAndServe(serverAddress, router))
}
