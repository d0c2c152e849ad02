// =============================================================================
// NetBox to Darkbot - Converter Module
// =============================================================================
//
// This module orchestrates one conversion run, from the source file to the
// Darkbot database.
//
// CONVERSION PIPELINE:
//   1. Resolve the content type (ips or reverse)
//   2. Read the whole source file (CSV or XLSX)
//   3. Turn rows into records
//   4. Optionally lint the records
//   5. Write the database to standard output or to a file
//
// The first row of the source is always the header and is skipped.
//
// =============================================================================

package converter

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/darkbot"
	"github.com/ginjaninja78/netbox2darkbot/internal/logging"
	"github.com/ginjaninja78/netbox2darkbot/internal/source"
	"github.com/ginjaninja78/netbox2darkbot/internal/types"
	"github.com/ginjaninja78/netbox2darkbot/internal/validation"
	"github.com/ginjaninja78/netbox2darkbot/pkg/utils"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options describes one conversion run.
type Options struct {
	// ContentType is the raw content type argument.
	ContentType string

	// SourcePath is the NetBox export to read.
	SourcePath string

	// OutputPath writes the database to this file instead of stdout.
	OutputPath string

	// OutputDir writes the database into this directory, naming the file
	// from the configured output_name_format. Ignored when OutputPath is set.
	OutputDir string

	// SkipFirst drops the first source row. The command line always sets it.
	SkipFirst bool

	// Lint reports validation warnings while converting.
	Lint bool
}

// Result represents the outcome of a run.
type Result struct {
	// ContentType is the resolved content type.
	ContentType types.ContentType

	// OutputFile is the written file, empty when writing to stdout.
	OutputFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of source rows, header included.
	RowsRead int

	// LinesWritten is the number of database lines emitted.
	LinesWritten int

	// Warnings is the number of lint findings (when linting).
	Warnings int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs conversions with a fixed configuration.
type Converter struct {
	cfg       *config.Config
	formatter *darkbot.Formatter
	logger    logging.Logger
	stdout    io.Writer
	now       func() time.Time
}

// New creates a Converter.
//
// PARAMETERS:
//   - cfg: The application configuration.
//   - logger: Destination of diagnostics.
//   - stdout: Destination of the database when no output file is set.
func New(cfg *config.Config, logger logging.Logger, stdout io.Writer) *Converter {
	return &Converter{
		cfg:       cfg,
		formatter: darkbot.NewFormatter(cfg.Darkbot),
		logger:    logger,
		stdout:    stdout,
		now:       time.Now,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result with statistics.
//   - A ContentTypeError, SourceError, row error or OutputError on failure.
//     Lines already written to stdout stay written.
func (c *Converter) Run(opts Options) (*Result, error) {
	startTime := c.now()

	contentType, ok := types.ParseContentType(opts.ContentType)
	if !ok {
		return nil, &ContentTypeError{Value: opts.ContentType}
	}

	result := &Result{ContentType: contentType}

	records, rowsRead, err := c.load(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	result.Stats.RowsRead = rowsRead

	if opts.Lint {
		result.Stats.Warnings = c.lint(records, opts.SkipFirst)
	}

	outputPath := c.outputPath(opts, contentType)
	if outputPath == "" {
		written, err := c.writeStdout(contentType, records, opts.SkipFirst)
		result.Stats.LinesWritten = written
		if err != nil {
			return nil, &OutputError{Err: err}
		}
	} else {
		written, err := c.writeFile(outputPath, contentType, records, opts.SkipFirst)
		if err != nil {
			return nil, &OutputError{Err: err}
		}
		result.Stats.LinesWritten = written
		result.OutputFile = outputPath
		c.logger.Info("wrote database", "file", outputPath, "lines", written)
	}

	result.Stats.ProcessingTime = c.now().Sub(startTime)
	c.logger.Debug("conversion complete",
		"type", contentType,
		"rows", result.Stats.RowsRead,
		"lines", result.Stats.LinesWritten,
		"elapsed", result.Stats.ProcessingTime)

	return result, nil
}

// Validate lints every record of the source without producing output.
// A ValidationFailedError is returned when warnings were found.
func (c *Converter) Validate(sourcePath string, skipFirst bool) (*validation.ValidationResult, error) {
	records, _, err := c.load(sourcePath)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateAll(records, skipFirst)
	c.report(result)

	if !result.IsValid() {
		return result, &ValidationFailedError{Count: len(result.Errors)}
	}
	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// load reads the source and converts every row, header included, to a
// record. The header must have the full width like any other row.
func (c *Converter) load(path string) ([]types.Record, int, error) {
	rows, err := source.Read(path, c.cfg)
	if err != nil {
		return nil, 0, &SourceError{Path: path, Err: err}
	}
	c.logger.Debug("read source", "file", path, "format", rows.Format, "rows", len(rows.Rows))

	records, err := BuildRecords(rows.Rows, rows.LineNumbers, c.cfg.Columns)
	if err != nil {
		return nil, 0, &SourceError{Path: path, Err: fmt.Errorf("%s: %w", filepath.Base(path), err)}
	}

	return records, len(rows.Rows), nil
}

// BuildRecords converts raw rows to records. lineNumbers may be nil, in
// which case rows are numbered from 1.
func BuildRecords(rows [][]string, lineNumbers []int, columns types.Columns) ([]types.Record, error) {
	records := make([]types.Record, 0, len(rows))
	for i, row := range rows {
		rowNumber := i + 1
		if i < len(lineNumbers) {
			rowNumber = lineNumbers[i]
		}

		record, err := columns.RecordFromRow(row, rowNumber)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// lint validates records and logs each finding.
func (c *Converter) lint(records []types.Record, skipFirst bool) int {
	result := validation.ValidateAll(records, skipFirst)
	c.report(result)
	return len(result.Errors)
}

// report logs validation findings.
func (c *Converter) report(result *validation.ValidationResult) {
	for _, finding := range result.Errors {
		c.logger.Warn(finding.Message,
			"row", finding.RowNumber,
			"field", finding.Field,
			"value", finding.Value)
	}
	c.logger.Debug("validation complete", "records", result.RecordsValidated, "warnings", len(result.Errors))
}

// outputPath resolves the destination file, or "" for stdout.
func (c *Converter) outputPath(opts Options, contentType types.ContentType) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	if opts.OutputDir == "" {
		return ""
	}

	name := utils.GenerateOutputFileName(c.cfg.OutputNameFormat, map[string]string{
		"type":   string(contentType),
		"source": utils.SourceBaseName(opts.SourcePath),
	}, c.now())
	return filepath.Join(opts.OutputDir, name)
}

// writeStdout writes the database to stdout, flushing whatever was written
// even when a later line fails.
func (c *Converter) writeStdout(contentType types.ContentType, records []types.Record, skipFirst bool) (int, error) {
	w := bufio.NewWriter(c.stdout)
	written, err := c.formatter.Write(w, contentType, records, skipFirst)
	if flushErr := w.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return written, err
}

// writeFile writes the database atomically to path.
func (c *Converter) writeFile(path string, contentType types.ContentType, records []types.Record, skipFirst bool) (int, error) {
	replacing := utils.FileExists(path)

	out, err := utils.CreateAtomic(path)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("writing database", "file", path, "temp", out.TempPath(), "replacing", replacing)

	written, err := c.formatter.Write(out, contentType, records, skipFirst)
	if err != nil {
		out.Abort()
		return 0, err
	}

	if err := out.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}
