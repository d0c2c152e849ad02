// Package source reads the raw rows of a NetBox export, picking the parser
// from the file extension.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/csvparser"
	"github.com/ginjaninja78/netbox2darkbot/internal/xlsxparser"
)

// Format identifies the file format of a source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Rows is the raw content of a source, header included.
type Rows struct {
	Rows        [][]string
	LineNumbers []int
	SourceFile  string
	Format      Format
}

// DetectFormat returns FormatXLSX for .xlsx files and FormatCSV otherwise.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Read loads every row of the file at path.
func Read(path string, cfg *config.Config) (*Rows, error) {
	switch format := DetectFormat(path); format {
	case FormatXLSX:
		data, err := xlsxparser.Parse(path, cfg.XLSXSettings)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return &Rows{Rows: data.Rows, LineNumbers: data.LineNumbers, SourceFile: path, Format: format}, nil
	default:
		data, err := csvparser.Parse(path, cfg.CSVSettings)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return &Rows{Rows: data.Rows, LineNumbers: data.LineNumbers, SourceFile: path, Format: format}, nil
	}
}
