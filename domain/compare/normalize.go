package compare

import (
	"strings"

	"colcompare/domain/table"
	"colcompare/internal/errors"
)

// MatchMode selects how a requested column name is matched against headers
type MatchMode int

const (
	// ColumnMatchNormalized ignores case and treats spaces as underscores
	ColumnMatchNormalized MatchMode = iota
	// ColumnMatchExact requires the header to equal the request byte for byte
	ColumnMatchExact
)

func (m MatchMode) String() string {
	if m == ColumnMatchExact {
		return "exact"
	}
	return "normalized"
}

// NormalizeColumnName lowercases s and replaces each space with an underscore
func NormalizeColumnName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// ColumnIndex maps normalized header names to the header as written in the file.
// When two headers normalize to the same name the first one wins.
func ColumnIndex(t *table.Table) map[string]string {
	index := make(map[string]string, len(t.Headers))
	for _, h := range t.Headers {
		key := NormalizeColumnName(h)
		if _, exists := index[key]; !exists {
			index[key] = h
		}
	}
	return index
}

// ResolveColumn finds the header in t that the requested name refers to.
// The returned error names the column as requested.
func ResolveColumn(t *table.Table, requested string, mode MatchMode) (string, error) {
	if mode == ColumnMatchExact {
		if t.HasColumn(requested) {
			return requested, nil
		}
		return "", errors.ColumnNotFound(requested)
	}

	if actual, ok := ColumnIndex(t)[NormalizeColumnName(requested)]; ok {
		return actual, nil
	}
	return "", errors.ColumnNotFound(requested)
}

// ResolveKeyColumns resolves the requested column in both tables, failing
// if either one lacks it.
func ResolveKeyColumns(left, right *table.Table, requested string, mode MatchMode) (string, string, error) {
	leftKey, leftErr := ResolveColumn(left, requested, mode)
	rightKey, rightErr := ResolveColumn(right, requested, mode)
	if leftErr != nil || rightErr != nil {
		return "", "", errors.ColumnNotFound(requested)
	}
	return leftKey, rightKey, nil
}
