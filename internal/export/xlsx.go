package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpritePack/internal/model"
)

const (
	framesSheet   = "Frames"
	rejectedSheet = "Rejected"
	summarySheet  = "Summary"
)

var (
	frameHeader    = []any{"Name", "X", "Y", "Width", "Height", "Bytes", "Source"}
	rejectedHeader = []any{"Name", "Width", "Height", "Source"}
)

// ExportXLSX writes the frame table, the rejected list and a summary to a
// workbook.
func ExportXLSX(path string, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", framesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(rejectedSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	if err := f.SetSheetRow(framesSheet, "A1", &frameHeader); err != nil {
		return err
	}
	for i, fr := range Frames(result, entries) {
		row := []any{fr.Name, fr.X, fr.Y, fr.Width, fr.Height, fr.ByteSize, fr.ID}
		if err := setRow(f, framesSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(rejectedSheet, "A1", &rejectedHeader); err != nil {
		return err
	}
	for i, r := range rejectedEntries(result, entries) {
		if err := setRow(f, rejectedSheet, i+2, []any{r.Name, r.Width, r.Height, r.ID}); err != nil {
			return err
		}
	}

	summary := [][]any{
		{"Atlas Size", cfg.SizeLabel()},
		{"Padding", cfg.Padding},
		{"Sort Method", cfg.Sort.String()},
		{"Placed", len(result.Placed)},
		{"Rejected", len(result.Rejected)},
		{"Efficiency %", fmt.Sprintf("%.1f", result.Efficiency(cfg))},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
