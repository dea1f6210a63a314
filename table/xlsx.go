package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the table to a spreadsheet with a bold header row.
// Study coordinators review cohort extracts in Excel, so the columns are
// widened to fit their content.
func WriteXLSX(t *Table, path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("set header %q: %w", name, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %q: %w", name, err)
		}
	}

	for r, row := range t.Rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell (%d,%d): %w", r, c, err)
			}
		}
	}

	widths := columnWidths(t)
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name %d: %w", col, err)
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// columnWidths sizes each column to its longest value, clamped to keep
// free-text columns readable.
func columnWidths(t *Table) []float64 {
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = float64(len(c)) + 2
	}
	for _, row := range t.Rows {
		for i, val := range row {
			if w := float64(len(val)) + 2; w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		if w > 48 {
			widths[i] = 48
		}
	}
	return widths
}
