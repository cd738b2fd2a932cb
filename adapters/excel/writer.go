package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"colcompare/adapters/markdown"
	"colcompare/domain/table"
	"colcompare/internal"
	"colcompare/internal/errors"

	"github.com/xuri/excelize/v2"
)

// maxExactDigits is the longest digit run a float64 cell holds without rounding
const maxExactDigits = 15

// DataWriter exports tables to xlsx, csv, markdown or html by file extension
type DataWriter struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewDataWriter creates a writer
func NewDataWriter(config ExcelConfig, logger *internal.Logger) *DataWriter {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if config.OutputSheet == "" {
		config.OutputSheet = DefaultExcelConfig().OutputSheet
	}
	return &DataWriter{config: config, logger: logger}
}

// WriteTable writes t to path, creating missing parent directories, and
// returns the absolute path. A failed write leaves no file behind.
func (w *DataWriter) WriteTable(ctx context.Context, path string, t *table.Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileType := detectFileType(path)
	if fileType == "" {
		return "", errors.InvalidInput(fmt.Sprintf("unsupported output file type: %s", path))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WriteError(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", errors.WriteError(absPath, err)
	}

	switch fileType {
	case fileTypeXLSX:
		err = w.writeExcel(absPath, t)
	case fileTypeCSV:
		err = w.writeCSV(absPath, t)
	case fileTypeMarkdown:
		err = os.WriteFile(absPath, []byte(markdown.Document(w.title(t), summary(t), t)), 0o644)
	case fileTypeHTML:
		title := w.title(t)
		err = os.WriteFile(absPath, markdown.ToHTML(title, markdown.Document(title, summary(t), t)), 0o644)
	}
	if err != nil {
		os.Remove(absPath)
		return "", errors.WriteError(absPath, err)
	}

	w.logger.Info("[DataWriter] wrote %d rows to %s", t.Len(), absPath)
	return absPath, nil
}

func (w *DataWriter) title(t *table.Table) string {
	if t.Sheet != "" {
		return t.Sheet
	}
	return w.config.OutputSheet
}

func summary(t *table.Table) string {
	return fmt.Sprintf("%d rows", t.Len())
}

// writeExcel streams the table into a single-sheet workbook with a bold header
func (w *DataWriter) writeExcel(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.title(t)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(t.Headers))
		for j, h := range t.Headers {
			cells[j] = cellValue(row[h])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func (w *DataWriter) writeCSV(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			record[i] = row[h]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// cellValue turns numeric text back into a number so exported keys keep
// their type. Text that would change when round-tripped stays a string.
func cellValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if n, ok := parseNumber(s); ok {
		return n
	}
	return s
}

func parseNumber(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" || strings.ContainsAny(digits, "eEnNiIxX_") {
		return 0, false
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return 0, false // leading zeros are identifiers, not numbers
	}
	if len(strings.ReplaceAll(digits, ".", "")) > maxExactDigits {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	if strconv.FormatFloat(n, 'f', -1, 64) != strings.TrimPrefix(s, "+") {
		return 0, false
	}
	return n, true
}
