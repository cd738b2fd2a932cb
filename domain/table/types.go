package table

// Row maps column name to cell value. An empty string is a null cell.
type Row map[string]string

// Table is one sheet of one input file, header row already applied.
// Every row carries every header.
type Table struct {
	Name    string   // Source file path
	Sheet   string   // Sheet the rows came from
	Headers []string // Column names in file order
	Rows    []Row    // Cell values as displayed
	Raw     []Row    // Underlying cell values, parallel to Rows; nil when they equal Rows
}

// New builds a table and fills in missing cells so rows share one column set
func New(name, sheet string, headers []string, rows []Row) *Table {
	t := &Table{Name: name, Sheet: sheet, Headers: headers, Rows: rows}
	fill(headers, t.Rows)
	return t
}

// SetRaw attaches the underlying cell values. raw must be parallel to Rows;
// anything else is ignored and matching falls back to the displayed values.
func (t *Table) SetRaw(raw []Row) {
	if len(raw) != len(t.Rows) {
		t.Raw = nil
		return
	}
	fill(t.Headers, raw)
	t.Raw = raw
}

// KeyValue returns the value row i is matched on for column name: the
// underlying cell value when known, the displayed one otherwise.
func (t *Table) KeyValue(i int, name string) string {
	if t.Raw != nil {
		return t.Raw[i][name]
	}
	return t.Rows[i][name]
}

// HasColumn reports whether the header row contains name exactly
func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) columnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

func fill(headers []string, rows []Row) {
	for _, row := range rows {
		for _, h := range headers {
			if _, ok := row[h]; !ok {
				row[h] = ""
			}
		}
	}
}
