// =============================================================================
// NetBox to Darkbot - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - darkbot
//   - validation
//   - converter
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// CONTENT TYPES
// =============================================================================

// ContentType selects the layout of the generated Darkbot database.
type ContentType string

const (
	// ContentTypeIPs produces one line per address, keyed by the clean IP.
	ContentTypeIPs ContentType = "ips"

	// ContentTypeReverse produces one line per DNS name, listing every
	// address that resolves to it.
	ContentTypeReverse ContentType = "reverse"
)

// SupportedContentTypes lists the content types in the order they are
// presented to users.
var SupportedContentTypes = []ContentType{ContentTypeIPs, ContentTypeReverse}

// ParseContentType returns the content type matching value exactly.
// No case folding or trimming is applied.
func ParseContentType(value string) (ContentType, bool) {
	for _, ct := range SupportedContentTypes {
		if string(ct) == value {
			return ct, true
		}
	}
	return "", false
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one address row of a NetBox export.
type Record struct {
	// Address is the address as exported, optionally in CIDR notation.
	Address string

	// DNSName is the DNS name attached to the address. May be empty.
	DNSName string

	// Description is the free-form description. May be empty.
	Description string

	// Status is the NetBox status, e.g. "active", "reserved", "deprecated".
	Status string

	// RowNumber is the 1-based row number in the source file.
	RowNumber int
}

// CleanIP returns the address with any prefix length removed.
func (r Record) CleanIP() string {
	return CleanIP(r.Address)
}

// HasPrefixLength reports whether the address carries a "/prefix" suffix.
func (r Record) HasPrefixLength() bool {
	return !IsCleanIP(r.Address)
}

// CleanIP strips everything from the first "/" onwards.
func CleanIP(address string) string {
	ip, _, _ := strings.Cut(address, "/")
	return ip
}

// IsCleanIP reports whether address contains no "/".
func IsCleanIP(address string) bool {
	return !strings.Contains(address, "/")
}

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// Columns holds the 0-based positions of the record fields in a source row.
type Columns struct {
	Address     int `yaml:"address"`
	DNSName     int `yaml:"dns_name"`
	Description int `yaml:"description"`
	Status      int `yaml:"status"`
}

// DefaultColumns is the NetBox export layout: address, dns_name, description,
// status.
func DefaultColumns() Columns {
	return Columns{Address: 0, DNSName: 1, Description: 2, Status: 3}
}

// Width is the minimum number of fields a row needs for this layout.
func (c Columns) Width() int {
	width := 0
	for _, idx := range []int{c.Address, c.DNSName, c.Description, c.Status} {
		if idx+1 > width {
			width = idx + 1
		}
	}
	return width
}

// RowError reports a source row that cannot be turned into a Record.
type RowError struct {
	RowNumber int
	Fields    int
	Want      int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: expected at least %d fields, got %d", e.RowNumber, e.Want, e.Fields)
}

// RecordFromRow builds a Record from a raw row using the column layout.
// rowNumber is 1-based and only used for error reporting.
func (c Columns) RecordFromRow(row []string, rowNumber int) (Record, error) {
	if len(row) < c.Width() {
		return Record{}, &RowError{RowNumber: rowNumber, Fields: len(row), Want: c.Width()}
	}

	return Record{
		Address:     row[c.Address],
		DNSName:     row[c.DNSName],
		Description: row[c.Description],
		Status:      row[c.Status],
		RowNumber:   rowNumber,
	}, nil
}
