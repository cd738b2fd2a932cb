package ports

import (
	"context"
	"io"

	"colcompare/domain/compare"
	"colcompare/domain/table"
)

// TableReaderPort loads one sheet of a tabular file. An empty sheet selects
// the first sheet.
type TableReaderPort interface {
	ReadTable(ctx context.Context, path, sheet string) (*table.Table, error)
}

// TableWriterPort writes a table to a new file and returns its absolute path
type TableWriterPort interface {
	WriteTable(ctx context.Context, path string, t *table.Table) (string, error)
}

// SanitizerPort produces a loadable copy of a file with cell styling reset.
// The returned cleanup removes the copy and must run on every exit path.
type SanitizerPort interface {
	Sanitize(ctx context.Context, path string) (cleanedPath string, cleanup func(), err error)
}

// ReportPrinterPort renders a comparison report for a human
type ReportPrinterPort interface {
	Print(w io.Writer, report *compare.Report) error
}
