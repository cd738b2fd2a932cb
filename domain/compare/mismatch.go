package compare

import (
	"colcompare/domain/table"
)

// SourceField is the column that names the file a mismatch came from
const SourceField = "Source"

// Labels name the two inputs in reports
type Labels struct {
	Left  string
	Right string
}

// DefaultLabels returns the "File 1" / "File 2" labels
func DefaultLabels() Labels {
	return Labels{Left: "File 1", Right: "File 2"}
}

// For returns the label matching a join tag, or "" for matched rows
func (l Labels) For(tag JoinTag) string {
	switch tag {
	case TagLeftOnly:
		return l.Left
	case TagRightOnly:
		return l.Right
	default:
		return ""
	}
}

// Schema is the reporting shape: the display key column, every other
// column of both inputs, then Source. A non-key column present in both
// inputs appears once and is filled from whichever side supplied the row.
type Schema struct {
	Columns   []string
	KeyLabel  string
	leftKey   string
	rightKey  string
	fromLeft  map[string]string // output column -> left header
	fromRight map[string]string // output column -> right header
}

// NewSchema builds the reporting shape for a join of left and right
func NewSchema(left, right *table.Table, leftKey, rightKey, keyLabel string) *Schema {
	s := &Schema{
		Columns:   []string{keyLabel},
		KeyLabel:  keyLabel,
		leftKey:   leftKey,
		rightKey:  rightKey,
		fromLeft:  make(map[string]string),
		fromRight: make(map[string]string),
	}
	reserved := map[string]bool{keyLabel: true, SourceField: true}

	for _, h := range left.Headers {
		if h == leftKey {
			continue
		}
		out := h
		if reserved[out] {
			out = h + "_x"
		}
		s.Columns = append(s.Columns, out)
		s.fromLeft[out] = h
	}

	for _, h := range right.Headers {
		if h == rightKey {
			continue
		}
		out := h
		if reserved[out] {
			out = h + "_y"
		}
		if _, shared := s.fromLeft[out]; !shared {
			s.Columns = append(s.Columns, out)
		}
		s.fromRight[out] = h
	}

	s.Columns = append(s.Columns, SourceField)
	return s
}

// MismatchRecord is one row found in only one input, in reporting shape
type MismatchRecord struct {
	Source string
	Tag    JoinTag
	Values table.Row
}

// Get returns the value of an output column
func (m MismatchRecord) Get(column string) string {
	return m.Values[column]
}

// Project converts a single-sided joined row into a MismatchRecord
func (s *Schema) Project(jr JoinedRow, labels Labels) MismatchRecord {
	values := make(table.Row, len(s.Columns))
	for _, col := range s.Columns {
		values[col] = ""
	}

	src, mapping, key := jr.Left, s.fromLeft, s.leftKey
	if jr.Tag == TagRightOnly {
		src, mapping, key = jr.Right, s.fromRight, s.rightKey
	}
	// the key is reported as the source file displays it
	values[s.KeyLabel] = src[key]
	for out, header := range mapping {
		values[out] = src[header]
	}

	source := labels.For(jr.Tag)
	values[SourceField] = source
	return MismatchRecord{Source: source, Tag: jr.Tag, Values: values}
}

// Mismatches keeps the single-sided rows of a join and projects them
func (s *Schema) Mismatches(joined []JoinedRow, labels Labels) []MismatchRecord {
	var records []MismatchRecord
	for _, jr := range joined {
		if !jr.IsMismatch() {
			continue
		}
		records = append(records, s.Project(jr, labels))
	}
	return records
}
