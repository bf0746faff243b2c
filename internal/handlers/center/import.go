// internal/handlers/center/import.go
package center

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/careshare/csh_backendl/internal/pkg/response"
	"github.com/careshare/csh_backendl/internal/repositories"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var sheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

type importRequest struct {
	GoogleSheetURL string `json:"google_sheet_url"`
}

// ImportCentersHandler bulk-loads centers from a Google Sheet with
// columns: name, latitude, longitude, radius. Existing centers with
// the same name are updated.
func ImportCentersHandler(repo *repositories.CenterRepository, defaultRadius float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GoogleSheetURL == "" {
			response.RespondWithError(w, http.StatusBadRequest, "google_sheet_url is required")
			return
		}

		match := sheetURLPattern.FindStringSubmatch(req.GoogleSheetURL)
		if match == nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid Google Sheet URL")
			return
		}
		spreadsheetID := match[1]

		srv, err := sheets.NewService(r.Context(), option.WithCredentialsFile("credentials.json"))
		if err != nil {
			log.Printf("Failed to create sheets client: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Sheets client unavailable")
			return
		}

		resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, "A1:D1000").Do()
		if err != nil {
			log.Printf("Failed to read sheet %s: %v", spreadsheetID, err)
			response.RespondWithError(w, http.StatusBadGateway, "Failed to read sheet")
			return
		}

		imported := 0
		var skipped []string
		for i, row := range resp.Values {
			center, err := parseCenterRow(row, defaultRadius)
			if err != nil {
				// Header rows and malformed lines are skipped, not fatal.
				skipped = append(skipped, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			if err := repo.Create(r.Context(), center); err != nil {
				log.Printf("DB error importing center %q: %v", center.Name, err)
				skipped = append(skipped, fmt.Sprintf("row %d: database error", i+1))
				continue
			}
			imported++
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"imported": imported,
			"skipped":  skipped,
		})
	}
}

func parseCenterRow(row []interface{}, defaultRadius float64) (*models.Center, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("need at least name, latitude, longitude")
	}

	name := fmt.Sprintf("%v", row[0])
	if name == "" {
		return nil, fmt.Errorf("empty name")
	}

	lat, err := strconv.ParseFloat(fmt.Sprintf("%v", row[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %v", row[1])
	}
	lon, err := strconv.ParseFloat(fmt.Sprintf("%v", row[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %v", row[2])
	}

	radius := defaultRadius
	if len(row) > 3 {
		if parsed, err := strconv.ParseFloat(fmt.Sprintf("%v", row[3]), 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}

	return &models.Center{Name: name, Latitude: lat, Longitude: lon, Radius: radius}, nil
}
