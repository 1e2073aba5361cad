// Package export writes observations to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// SheetName is the worksheet holding the observations.
const SheetName = "Observations"

// Headers are the column titles of the observations sheet.
var Headers = []string{
	"ID",
	"Telescope",
	"Program",
	"Target",
	"RA (deg)",
	"Dec (deg)",
	"Observed",
	"Instrument",
	"Filters",
	"Exposure (s)",
	"Score",
	"Status",
	"Version",
	"Don't Panic",
	"Image URL",
}

// WriteWorkbook writes observations as an XLSX workbook to w.
func WriteWorkbook(w io.Writer, observations []*observation.Observation) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of adding a second one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, o := range observations {
		row := i + 2
		observed := ""
		if !o.ObsDate.IsZero() {
			observed = o.ObsDate.UTC().Format("2006-01-02 15:04:05")
		}
		badge := ""
		if o.HasDontPanicBadge() {
			badge = "yes"
		}

		values := []any{
			o.ID,
			o.Telescope,
			o.ProgramID,
			o.TargetName,
			o.RA,
			o.Dec,
			observed,
			o.Instrument,
			o.Filters,
			o.ExposureSec,
			o.Score,
			string(o.Status),
			o.Version,
			badge,
			o.ImageURL,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "D", 20)
	_ = f.SetColWidth(SheetName, "G", "I", 22)
	_ = f.SetColWidth(SheetName, "O", "O", 60)
	_ = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
