package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wargadata-dev/warga-store/internal/report"
	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// buildWorkbook encodes the spreadsheet representation into a single
// "Data Penduduk" sheet with the fixed column widths.
func buildWorkbook(records []schema.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", report.SheetName); err != nil {
		return nil, err
	}

	// Header row, bold
	for i, header := range report.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(report.SheetName, cell, header); err != nil {
			return nil, err
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	firstCell, _ := excelize.CoordinatesToCellName(1, 1)
	lastCell, _ := excelize.CoordinatesToCellName(len(report.Columns), 1)
	if err := f.SetCellStyle(report.SheetName, firstCell, lastCell, style); err != nil {
		return nil, err
	}

	// Data rows, in the fixed column-key order
	for rowIdx, row := range report.SpreadsheetRows(records) {
		for colIdx, header := range report.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(report.SheetName, cell, row[header]); err != nil {
				return nil, err
			}
		}
	}

	for i, width := range report.ColumnWidths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(report.SheetName, colName, colName, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
