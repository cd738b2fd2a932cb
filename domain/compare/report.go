package compare

import (
	"strings"

	"colcompare/domain/core"
	"colcompare/domain/table"
)

// Report is the outcome of one comparison
type Report struct {
	RunID       core.RunID
	Column      string // Key column as requested
	LeftColumn  string // Key column as written in file 1
	RightColumn string // Key column as written in file 2
	Columns     []string
	Mismatches  []MismatchRecord
	Counts      Counts
	OutputPath  string // Absolute path of the exported file, if any
	Fingerprint core.Hash
}

// HasMismatches reports whether any key exists in only one input
func (r *Report) HasMismatches() bool {
	return len(r.Mismatches) > 0
}

// ToTable lays the mismatches out as a table for export
func (r *Report) ToTable(name string) *table.Table {
	rows := make([]table.Row, len(r.Mismatches))
	for i, m := range r.Mismatches {
		rows[i] = m.Values
	}
	return table.New(name, "Mismatches", r.Columns, rows)
}

// ComputeFingerprint hashes the mismatch set. Row order does not matter,
// so reruns over the same inputs yield the same fingerprint.
func ComputeFingerprint(columns []string, records []MismatchRecord) core.Hash {
	encoded := make([]string, len(records))
	for i, m := range records {
		fields := make([]string, len(columns))
		for j, col := range columns {
			fields[j] = m.Values[col]
		}
		encoded[i] = strings.Join(fields, "\x1f")
	}
	return core.ComputeSetHash(append(encoded, strings.Join(columns, "\x1f")))
}
