package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docvert/internal/domain"
)

var batchColumns = []string{"Input", "Output", "Status", "Error"}

// WriteBatchXLSX writes a folder-conversion report as an XLSX workbook:
// one row per file plus a summary sheet with aggregate counts.
func WriteBatchXLSX(w io.Writer, batch *domain.BatchResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Conversions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	set := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, h := range batchColumns {
		set(i+1, 1, h)
	}

	row := 2
	for _, outcome := range batch.Files {
		set(1, row, outcome.Input)
		set(2, row, outcome.Output)
		set(3, row, outcomeStatus(outcome))
		set(4, row, outcome.Err)
		row++
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	sset := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(summary, cell, v)
	}
	sset(1, 1, "Input Dir")
	sset(2, 1, batch.InputDir)
	sset(1, 2, "Output Dir")
	sset(2, 2, batch.OutputDir)
	sset(1, 3, "Started At")
	sset(2, 3, batch.StartedAt.Format("2006-01-02 15:04:05"))
	sset(1, 4, "Scanned")
	sset(2, 4, batch.Stats.Scanned)
	sset(1, 5, "Matched")
	sset(2, 5, batch.Stats.Matched)
	sset(1, 6, "Succeeded")
	sset(2, 6, batch.Stats.Succeeded)
	sset(1, 7, "Failed")
	sset(2, 7, batch.Stats.Failed)
	sset(1, 8, "Skipped")
	sset(2, 8, batch.Stats.Skipped)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func outcomeStatus(o domain.FileOutcome) string {
	switch {
	case o.Skipped:
		return "skipped"
	case o.Err != "":
		return "failed"
	default:
		return "converted"
	}
}
