// internal/handlers/report/report_handler.go
package report

import (
	"log"
	"net/http"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	reportService "github.com/careshare/csh_backendl/internal/services/report"
)

func parseParams(r *http.Request) (reportService.Window, time.Time, error) {
	windowParam := r.URL.Query().Get("window")
	if windowParam == "" {
		windowParam = string(reportService.Monthly)
	}
	kind, err := reportService.ParseWindow(windowParam)
	if err != nil {
		return "", time.Time{}, err
	}

	ref := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return "", time.Time{}, err
		}
		ref = parsed
	}
	return kind, ref, nil
}

func loadSummary(r *http.Request, shifts *repositories.ShiftRepository) (reportService.Summary, reportService.Window, error) {
	kind, ref, err := parseParams(r)
	if err != nil {
		return reportService.Summary{}, "", err
	}

	approved, err := shifts.ListByStatus(r.Context(), models.ShiftApproved)
	if err != nil {
		return reportService.Summary{}, "", err
	}
	return reportService.Aggregate(approved, kind, ref), kind, nil
}

// SummaryHandler returns the aggregated hours report as JSON.
func SummaryHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, _, err := loadSummary(r, shifts)
		if err != nil {
			log.Printf("Failed to build report: %v", err)
			response.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		response.RespondWithJSON(w, http.StatusOK, summary)
	}
}

// ExportHandler streams the same report as an .xlsx download.
func ExportHandler(shifts *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, kind, err := loadSummary(r, shifts)
		if err != nil {
			log.Printf("Failed to build report export: %v", err)
			response.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		workbook, err := reportService.BuildWorkbook(summary, kind)
		if err != nil {
			log.Printf("Failed to render workbook: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to render report")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="hours_report_`+string(kind)+`.xlsx"`)
		if err := workbook.Write(w); err != nil {
			log.Printf("Failed to write workbook: %v", err)
		}
	}
}
