package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"colcompare/domain/table"
	"colcompare/internal"
	"colcompare/internal/errors"

	"github.com/dimchansky/utfbom"
	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DataReader{logger: logger}
}

// ReadTable loads one sheet of an Excel or CSV file, treating the first row
// as the header. CSV files have a single unnamed sheet, so sheet is ignored.
func (r *DataReader) ReadTable(ctx context.Context, path, sheet string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType := detectFileType(path)
	r.logger.Debug("[DataReader] Starting to read %s file: %s", fileType, path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path, err)
		}
		return nil, errors.ParseError(path, err)
	}

	switch fileType {
	case fileTypeCSV:
		return r.readCSVData(path)
	case fileTypeXLSX:
		return r.readExcelData(path, sheet)
	default:
		return nil, errors.ParseError(path, fmt.Errorf("unsupported file type %q", fileType))
	}
}

// readExcelData reads one worksheet into a table
func (r *DataReader) readExcelData(path, sheet string) (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	defer f.Close()
	r.logger.Debug("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheetName, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.ParseError(path, fmt.Errorf("failed to read sheet %q: %w", sheetName, err))
	}
	// Number formats change the displayed text ("1" vs "1.00") but not the
	// stored value, so keys are matched on the raw values.
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ParseError(path, fmt.Errorf("failed to read sheet %q: %w", sheetName, err))
	}
	r.logger.Debug("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheetName, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(path, sheetName, rows, raw)
}

// readCSVData reads CSV data into a table
func (r *DataReader) readCSVData(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(utfbom.SkipOnly(file))
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(path, "", rows, nil)
}

// resolveSheet picks a worksheet by name. Empty selects the first sheet and
// a number that names no sheet is taken as a 0-based index.
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == sheet {
			return name, nil
		}
	}
	if idx, err := strconv.Atoi(sheet); err == nil && idx >= 0 && idx < len(sheets) {
		return sheets[idx], nil
	}
	return "", fmt.Errorf("sheet %q not found", sheet)
}

// processRows converts string rows into a table. raw holds the underlying
// cell values in the same layout as rows, or is nil when they are the same.
// Header cells are trimmed; data cells are kept verbatim.
func (r *DataReader) processRows(path, sheet string, rows, raw [][]string) (*table.Table, error) {
	if len(rows) == 0 && len(raw) == 0 {
		return nil, errors.ParseError(path, fmt.Errorf("no header row"))
	}

	height := max(len(rows), len(raw))
	width := 0
	for i := 0; i < height; i++ {
		width = max(width, len(rowAt(rows, i)), len(rowAt(raw, i)))
	}
	headers := buildHeaders(rowAt(rows, 0), width)

	var dataRows, rawRows []table.Row
	for i := 1; i < height; i++ {
		row, rawRow := rowAt(rows, i), rowAt(raw, i)
		if isBlank(row) && isBlank(rawRow) {
			r.logger.Trace("[DataReader] skipping blank row %d of %s", i+1, path)
			continue
		}
		dataRows = append(dataRows, toRow(headers, row))
		if raw != nil {
			rawRows = append(rawRows, toRow(headers, rawRow))
		}
	}

	r.logger.Info("[DataReader] %s loaded (%d columns, %d rows)", path, len(headers), len(dataRows))

	t := table.New(path, sheet, headers, dataRows)
	if raw != nil {
		t.SetRaw(rawRows)
	}
	return t, nil
}

func rowAt(rows [][]string, i int) []string {
	if i < len(rows) {
		return rows[i]
	}
	return nil
}

func toRow(headers, cells []string) table.Row {
	row := make(table.Row, len(headers))
	for j, header := range headers {
		if j < len(cells) {
			row[header] = cells[j]
		} else {
			row[header] = ""
		}
	}
	return row
}

// buildHeaders trims header cells, names blank ones "Unnamed: N" and
// suffixes repeats with ".1", ".2" so every column has a distinct name.
func buildHeaders(headerRow []string, width int) []string {
	headers := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(headerRow) {
			name = strings.TrimSpace(headerRow[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		headers[i] = name
	}
	return headers
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
