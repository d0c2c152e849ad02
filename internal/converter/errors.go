package converter

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitContentType = 2
	ExitFailure     = 3
	ExitValidation  = 4
)

// UsageError reports a command line with missing or malformed arguments.
type UsageError struct {
	// Usage is the one-line synopsis shown to the user.
	Usage string

	// Hints are extra lines printed after the synopsis.
	Hints []string

	// Err is the parser error, if the failure came from flag parsing.
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Usage
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ContentTypeError reports a content type other than "ips" or "reverse".
type ContentTypeError struct {
	Value string
}

func (e *ContentTypeError) Error() string {
	return "Unknown content type: " + e.Value
}

// SourceError wraps any failure to read the source file.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// OutputError wraps a failure to write the database.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return e.Err.Error()
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// ValidationFailedError is returned by Validate when warnings were found.
type ValidationFailedError struct {
	Count int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation found %d warning(s)", e.Count)
}

// ExitCode maps an error returned by this package to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		usageErr      *UsageError
		contentErr    *ContentTypeError
		validationErr *ValidationFailedError
	)
	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &contentErr):
		return ExitContentType
	case errors.As(err, &validationErr):
		return ExitValidation
	default:
		return ExitFailure
	}
}

// IsRowError reports whether err was caused by a malformed source row.
func IsRowError(err error) bool {
	var rowErr *types.RowError
	return errors.As(err, &rowErr)
}
