// =============================================================================
// NetBox to Darkbot - Record Validation
// =============================================================================
//
// This module lints NetBox records. Findings are warnings only: they are
// reported, never used to drop or rewrite a record, so the generated Darkbot
// database is the same whether or not validation runs.
//
// CHECKS:
//   - Address: must parse as an IP address or an IP prefix
//   - DNS name: when set, must be a syntactically valid domain name
//   - Status: must not be empty
//
// =============================================================================

package validation

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"

	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Rule names reported in ValidationError.Rule.
const (
	RuleAddress = "address"
	RuleDNSName = "dns_name"
	RuleStatus  = "status"
)

// ValidationError represents a single finding on a record.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable message.
	Message string

	// RowNumber is the source row number.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d, field '%s': %s (value: '%s')", e.RowNumber, e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// Errors contains every finding in source order.
	Errors []*ValidationError

	// RecordsValidated is the number of records inspected.
	RecordsValidated int
}

// IsValid reports whether no finding was recorded.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// ValidateAll validates every record, optionally skipping the first one
// (the header row).
func ValidateAll(records []types.Record, skipFirst bool) *ValidationResult {
	result := &ValidationResult{}

	for i, record := range records {
		if skipFirst && i == 0 {
			continue
		}
		result.RecordsValidated++
		result.Errors = append(result.Errors, ValidateRecord(record)...)
	}

	return result
}

// ValidateRecord runs every check on one record.
func ValidateRecord(record types.Record) []*ValidationError {
	var errs []*ValidationError

	if msg := validateAddress(record.Address); msg != "" {
		errs = append(errs, &ValidationError{
			Field:     "address",
			Value:     record.Address,
			Rule:      RuleAddress,
			Message:   msg,
			RowNumber: record.RowNumber,
		})
	}

	if msg := validateDNSName(record.DNSName); msg != "" {
		errs = append(errs, &ValidationError{
			Field:     "dns_name",
			Value:     record.DNSName,
			Rule:      RuleDNSName,
			Message:   msg,
			RowNumber: record.RowNumber,
		})
	}

	if strings.TrimSpace(record.Status) == "" {
		errs = append(errs, &ValidationError{
			Field:     "status",
			Value:     record.Status,
			Rule:      RuleStatus,
			Message:   "status is empty",
			RowNumber: record.RowNumber,
		})
	}

	return errs
}

// validateAddress returns an error message when address is neither an IP
// nor a prefix.
func validateAddress(address string) string {
	if address == "" {
		return "address is empty"
	}
	if types.IsCleanIP(address) {
		if _, err := netip.ParseAddr(address); err != nil {
			return "not a valid IP address"
		}
		return ""
	}
	if _, err := netip.ParsePrefix(address); err != nil {
		return "not a valid IP prefix"
	}
	return ""
}

// validateDNSName returns an error message when name is set but is not a
// valid domain name. Empty names are allowed.
func validateDNSName(name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsAny(name, " \t") {
		return "DNS name contains whitespace"
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return "not a valid DNS name"
	}
	return ""
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d warning(s):\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
