// =============================================================================
// NetBox to Darkbot - File Management Utilities
// =============================================================================
//
// This package provides utilities for writing the generated database:
//   - Atomic writes (temporary file in the target directory, then rename)
//   - Output file naming from a template
//
// A Darkbot instance may read its database at any time, so a half-written
// file must never replace a good one.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC FILE
// =============================================================================

// AtomicFile buffers writes into a temporary file and only moves it over the
// target path on Commit.
type AtomicFile struct {
	// Path is the final destination.
	Path string

	tmp    *os.File
	writer *bufio.Writer
	done   bool
}

// CreateAtomic opens a temporary file next to path.
//
// PARAMETERS:
//   - path: The final destination of the file.
//
// RETURNS:
//   - The AtomicFile to write to.
//   - An error if the target directory cannot be created or written.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	return &AtomicFile{
		Path:   path,
		tmp:    tmp,
		writer: bufio.NewWriter(tmp),
	}, nil
}

// Write implements io.Writer.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.writer.Write(p)
}

// TempPath returns the path of the temporary file.
func (a *AtomicFile) TempPath() string {
	return a.tmp.Name()
}

// Commit flushes, syncs and renames the temporary file over Path.
func (a *AtomicFile) Commit() error {
	if a.done {
		return fmt.Errorf("%s: already closed", a.Path)
	}
	a.done = true

	if err := a.writer.Flush(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := a.tmp.Sync(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to sync output: %w", err)
	}
	if err := a.tmp.Close(); err != nil {
		os.Remove(a.tmp.Name())
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(a.tmp.Name(), a.Path); err != nil {
		os.Remove(a.tmp.Name())
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.cleanup()
}

func (a *AtomicFile) cleanup() {
	a.tmp.Close()
	os.Remove(a.tmp.Name())
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               plus one placeholder per key of params, e.g. {type}
//   - params: A map of placeholder values.
//   - now: The time used for date placeholders.
//
// EXAMPLE:
//   format: "{type}_{date}.db"
//   params: {"type": "reverse"}
//   output: "reverse_20240115.db"
func GenerateOutputFileName(format string, params map[string]string, now time.Time) string {
	replacements := []string{
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements = append(replacements, "{uuid}", uuid.New().String())
	}
	for key, value := range params {
		replacements = append(replacements, "{"+key+"}", value)
	}

	return strings.NewReplacer(replacements...).Replace(format)
}

// SourceBaseName returns the file name of path without directory and
// extension.
func SourceBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
