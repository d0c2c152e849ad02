// =============================================================================
// NetBox to Darkbot - Darkbot Database Writer
// =============================================================================
//
// This module turns NetBox records into Darkbot database lines. A Darkbot
// database is a flat text file; the first whitespace-delimited token of each
// line is the lookup key and the rest is the reply text.
//
// CONTENT TYPES:
//   - ips:     one line per record, keyed by the clean IP
//   - reverse: one line per DNS name, listing every address resolving to it
//
// EXAMPLES:
//   ips:     "10.0.0.1 10.0.0.1/24 / host.example"
//            "10.0.0.2 desc [deprecated]"
//   reverse: "host.example 10.0.0.1 / 10.0.0.2 [maintenance]"
//
// =============================================================================

package darkbot

import (
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

// =============================================================================
// FORMATTER
// =============================================================================

// Formatter renders records as Darkbot lines.
type Formatter struct {
	activeStatus     string
	undocumentedText string
	separator        string
}

// NewFormatter creates a Formatter from the Darkbot settings.
func NewFormatter(settings config.DarkbotSettings) *Formatter {
	return &Formatter{
		activeStatus:     settings.ActiveStatus,
		undocumentedText: settings.UndocumentedText,
		separator:        settings.Separator,
	}
}

// DefaultFormatter renders the stock format: "active" status, " / "
// separator and "Undocumented IP on NetBox" for bare addresses.
func DefaultFormatter() *Formatter {
	return NewFormatter(config.Default().Darkbot)
}

// =============================================================================
// LINE BUILDING
// =============================================================================

// statusSuffix returns " [status]" unless the status is the active one.
func (f *Formatter) statusSuffix(status string) string {
	if status == f.activeStatus {
		return ""
	}
	return " [" + status + "]"
}

// IPLine builds the "ips" line for one record.
//
// LINE LAYOUT:
//   <clean ip> <fragments joined by separator | undocumented text>[ [status]]
//
// Fragments, in order: the raw address when it carries a prefix length, the
// DNS name when set, the description when set.
func (f *Formatter) IPLine(record types.Record) string {
	var fragments []string

	if record.HasPrefixLength() {
		fragments = append(fragments, record.Address)
	}
	if record.DNSName != "" {
		fragments = append(fragments, record.DNSName)
	}
	if record.Description != "" {
		fragments = append(fragments, record.Description)
	}

	var line strings.Builder
	line.WriteString(record.CleanIP())
	line.WriteString(" ")

	if len(fragments) > 0 {
		line.WriteString(strings.Join(fragments, f.separator))
	} else {
		line.WriteString(f.undocumentedText)
	}

	line.WriteString(f.statusSuffix(record.Status))

	return line.String()
}

// ReverseEntry builds one address entry of a "reverse" line. The status
// annotation belongs to the entry, not to the whole line.
func (f *Formatter) ReverseEntry(record types.Record) string {
	return record.CleanIP() + f.statusSuffix(record.Status)
}

// =============================================================================
// GROUPING
// =============================================================================

// Groups collects reverse entries per DNS name, remembering the order in
// which names were first seen.
type Groups struct {
	names   []string
	entries map[string][]string
}

// NewGroups creates an empty Groups.
func NewGroups() *Groups {
	return &Groups{entries: make(map[string][]string)}
}

// Add appends entry to the list for name.
func (g *Groups) Add(name, entry string) {
	if _, ok := g.entries[name]; !ok {
		g.names = append(g.names, name)
	}
	g.entries[name] = append(g.entries[name], entry)
}

// Names returns the DNS names in first-seen order.
func (g *Groups) Names() []string {
	return g.names
}

// Entries returns the entries recorded for name.
func (g *Groups) Entries(name string) []string {
	return g.entries[name]
}

// Len returns the number of distinct names.
func (g *Groups) Len() int {
	return len(g.names)
}

// GroupReverse builds the reverse grouping for records. Records without a
// DNS name are left out.
func (f *Formatter) GroupReverse(records []types.Record, skipFirst bool) *Groups {
	groups := NewGroups()

	for i, record := range records {
		if skipFirst && i == 0 {
			continue
		}
		if record.DNSName == "" {
			continue
		}
		groups.Add(record.DNSName, f.ReverseEntry(record))
	}

	return groups
}

// ReverseLine joins the entries of name into one line.
func (f *Formatter) ReverseLine(name string, entries []string) string {
	return name + " " + strings.Join(entries, f.separator)
}

// =============================================================================
// WRITERS
// =============================================================================

// WriteIPs writes one "ips" line per record.
//
// PARAMETERS:
//   - w: Destination of the lines.
//   - records: Records in source order.
//   - skipFirst: Drop the first record (the header row).
//
// RETURNS:
//   - The number of lines written.
//   - The first write error, if any. Lines written before it stay written.
func (f *Formatter) WriteIPs(w io.Writer, records []types.Record, skipFirst bool) (int, error) {
	written := 0
	for i, record := range records {
		if skipFirst && i == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, f.IPLine(record)); err != nil {
			return written, fmt.Errorf("failed to write line for row %d: %w", record.RowNumber, err)
		}
		written++
	}
	return written, nil
}

// WriteReverse writes one "reverse" line per distinct DNS name, in the order
// names first appear.
func (f *Formatter) WriteReverse(w io.Writer, records []types.Record, skipFirst bool) (int, error) {
	groups := f.GroupReverse(records, skipFirst)

	written := 0
	for _, name := range groups.Names() {
		if _, err := fmt.Fprintln(w, f.ReverseLine(name, groups.Entries(name))); err != nil {
			return written, fmt.Errorf("failed to write line for %s: %w", name, err)
		}
		written++
	}
	return written, nil
}

// Write dispatches to the writer for contentType.
func (f *Formatter) Write(w io.Writer, contentType types.ContentType, records []types.Record, skipFirst bool) (int, error) {
	switch contentType {
	case types.ContentTypeIPs:
		return f.WriteIPs(w, records, skipFirst)
	case types.ContentTypeReverse:
		return f.WriteReverse(w, records, skipFirst)
	default:
		return 0, fmt.Errorf("unsupported content type %q", contentType)
	}
}
