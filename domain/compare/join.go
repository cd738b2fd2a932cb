package compare

import (
	"colcompare/domain/table"
)

// JoinTag records which inputs contributed to a joined row
type JoinTag string

const (
	TagBoth      JoinTag = "both"
	TagLeftOnly  JoinTag = "left_only"
	TagRightOnly JoinTag = "right_only"
)

// JoinedRow pairs a left and a right row sharing a key value. Key is the
// underlying value the rows matched on. One side is nil when the key exists
// in only one table.
type JoinedRow struct {
	Key   string
	Left  table.Row
	Right table.Row
	Tag   JoinTag
}

// IsMismatch reports whether the row came from only one table
func (jr JoinedRow) IsMismatch() bool {
	return jr.Tag != TagBoth
}

// OuterJoin performs a full outer join of left and right on the given key
// columns. Rows sharing a key pair up as a cartesian product within the key
// group. The empty key is an ordinary value, so empty keys on both sides match.
// Keys compare by underlying cell value, so number formats do not matter.
//
// Output order: left rows in file order (each followed by its matches in
// right file order), then unmatched right rows in file order.
func OuterJoin(left, right *table.Table, leftKey, rightKey string) []JoinedRow {
	rightIndex := make(map[string][]int, len(right.Rows))
	for pos := range right.Rows {
		k := right.KeyValue(pos, rightKey)
		rightIndex[k] = append(rightIndex[k], pos)
	}

	results := make([]JoinedRow, 0, len(left.Rows)+len(right.Rows))
	leftKeys := make(map[string]bool, len(left.Rows))

	for i, leftRow := range left.Rows {
		k := left.KeyValue(i, leftKey)
		leftKeys[k] = true

		positions, found := rightIndex[k]
		if !found {
			results = append(results, JoinedRow{Key: k, Left: leftRow, Tag: TagLeftOnly})
			continue
		}
		for _, pos := range positions {
			results = append(results, JoinedRow{Key: k, Left: leftRow, Right: right.Rows[pos], Tag: TagBoth})
		}
	}

	for pos, rightRow := range right.Rows {
		k := right.KeyValue(pos, rightKey)
		if !leftKeys[k] {
			results = append(results, JoinedRow{Key: k, Right: rightRow, Tag: TagRightOnly})
		}
	}

	return results
}

// Counts tallies joined rows by tag
type Counts struct {
	Both      int `json:"both"`
	LeftOnly  int `json:"left_only"`
	RightOnly int `json:"right_only"`
}

// Mismatches returns the number of rows found in only one table
func (c Counts) Mismatches() int {
	return c.LeftOnly + c.RightOnly
}

// CountTags tallies joined rows by tag
func CountTags(joined []JoinedRow) Counts {
	var c Counts
	for _, jr := range joined {
		switch jr.Tag {
		case TagBoth:
			c.Both++
		case TagLeftOnly:
			c.LeftOnly++
		case TagRightOnly:
			c.RightOnly++
		}
	}
	return c
}
