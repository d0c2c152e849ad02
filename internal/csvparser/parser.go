// =============================================================================
// NetBox to Darkbot - CSV Parser Module
// =============================================================================
//
// This module reads NetBox CSV exports. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Quoted fields with embedded delimiters, quotes and newlines
//   - Rows of varying width (the record layer decides what is acceptable)
//
// The whole file is read into memory before any transformation starts.
// Field values are returned exactly as they appear in the file: no trimming,
// no header interpretation.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Rows contains every row of the file, header included, as raw fields.
	Rows [][]string

	// LineNumbers holds, for each row, the 1-based line on which it starts.
	// Quoted fields may span lines, so this can differ from the row index.
	LineNumbers []int

	// SourceFile is the path to the source CSV file.
	SourceFile string
}

// RowCount returns the number of rows read, header included.
func (d *CSVData) RowCount() int {
	return len(d.Rows)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the CSVData struct containing every row.
//   - An error if the file cannot be opened or is not valid CSV.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}

	data.SourceFile = filePath
	return data, nil
}

// ParseReader reads CSV content from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	data := &CSVData{}
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)
		data.Rows = append(data.Rows, row)
		data.LineNumbers = append(data.LineNumbers, line)
	}

	return data, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Width is checked when rows become records.
	reader.FieldsPerRecord = -1

	// NetBox descriptions are free text; tolerate stray quotes.
	reader.LazyQuotes = true

	// Leading spaces are part of the value.
	reader.TrimLeadingSpace = false

	reader.ReuseRecord = false
}

// Delimiter maps a configured delimiter name to the rune used by the reader.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(name) > 0 {
			return []rune(name)[0]
		}
		return ','
	}
}
