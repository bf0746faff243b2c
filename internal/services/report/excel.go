// internal/services/report/excel.go
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a summary into an .xlsx workbook for the
// admin report download.
func BuildWorkbook(summary Summary, kind Window) (*excelize.File, error) {
	xlsx := excelize.NewFile()
	sheet := xlsx.GetSheetName(0)

	header := [][]interface{}{
		{"Report window", string(kind)},
		{"Total hours", summary.TotalHours},
		{"Volunteers active", summary.DistinctVolunteers},
		{"Total sessions", summary.SessionCount},
		{},
		{"Date", "Volunteer", "Activity", "Hours"},
	}
	for i, row := range header {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := xlsx.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write header cell: %w", err)
			}
		}
	}

	for i, row := range summary.Rows {
		hours := 0.0
		if row.Hours != nil {
			hours = *row.Hours
		}
		values := []interface{}{
			row.StartTime.Format("2006-01-02"),
			row.VolunteerName,
			row.Activity,
			hours,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+len(header)+1)
			if err := xlsx.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row cell: %w", err)
			}
		}
	}

	return xlsx, nil
}
