// =============================================================================
// NetBox to Darkbot - XLSX Parser Module
// =============================================================================
//
// NetBox table exports can also be saved as spreadsheets. This module reads
// such a workbook and returns its rows in the same raw shape as the CSV
// parser, so the rest of the pipeline does not care where rows came from.
//
// SHEET SELECTION:
//   - The configured sheet when xlsx_settings.sheet is set
//   - Otherwise the first sheet of the workbook
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
)

// =============================================================================
// SHEET DATA STRUCTURE
// =============================================================================

// SheetData represents the rows read from one worksheet.
type SheetData struct {
	// Rows contains every row of the sheet, header included.
	Rows [][]string

	// LineNumbers holds the 1-based spreadsheet row of each entry in Rows.
	LineNumbers []int

	// SourceFile is the path to the workbook.
	SourceFile string

	// SheetName is the worksheet the rows were read from.
	SheetName string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a workbook and returns the rows of the selected sheet.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: The XLSX settings (sheet selection).
//
// RETURNS:
//   - A pointer to the SheetData struct.
//   - An error if the workbook cannot be opened or the sheet is missing.
func Parse(filePath string, settings config.XLSXSettings) (*SheetData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	data, err := readSheet(f, settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader reads a workbook from r.
func ParseReader(r io.Reader, settings config.XLSXSettings) (*SheetData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, settings)
}

// readSheet extracts the rows of the selected sheet.
func readSheet(f *excelize.File, settings config.XLSXSettings) (*SheetData, error) {
	sheetName := settings.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	// excelize drops trailing empty cells; pad to the widest row so an empty
	// trailing status or description still reads as "".
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	data := &SheetData{SheetName: sheetName}
	for i, row := range rows {
		// Blank rows are skipped, mirroring the CSV reader.
		if len(row) == 0 {
			continue
		}
		data.Rows = append(data.Rows, padRow(row, width))
		data.LineNumbers = append(data.LineNumbers, i+1)
	}

	return data, nil
}

// padRow extends row with empty cells up to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
