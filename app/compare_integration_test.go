package app

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"colcompare/adapters/excel"
	"colcompare/domain/compare"
	"colcompare/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, path string, rows ...[]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	fill, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", fill))
	require.NoError(t, f.SaveAs(path))
	return path
}

func newExcelService(tempDir string, options CompareOptions) *ComparatorService {
	return NewComparatorService(
		excel.NewDataReader(nil),
		excel.NewDataWriter(excel.DefaultExcelConfig(), nil),
		excel.NewStyleSanitizer(tempDir, nil),
		options,
		nil,
	)
}

func exportedRows(t *testing.T, path string) []string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Mismatches")
	require.NoError(t, err)

	var flat []string
	for _, row := range rows[1:] {
		flat = append(flat, strings.Join(row, "|"))
	}
	sort.Strings(flat)
	return flat
}

func TestCompareFilesEndToEnd(t *testing.T) {
	dir, tempDir := t.TempDir(), t.TempDir()
	file1 := saveWorkbook(t, filepath.Join(dir, "live.xlsx"),
		[]interface{}{"Promotion Code", "Discount"},
		[]interface{}{"SPRING", 10},
		[]interface{}{"SUMMER", 15},
	)
	file2 := saveWorkbook(t, filepath.Join(dir, "archive.xlsx"),
		[]interface{}{"promotion_code", "Discount"},
		[]interface{}{"SUMMER", 15},
		[]interface{}{"WINTER", 20},
	)
	output := filepath.Join(dir, "reports", "mismatches.xlsx")

	options := DefaultCompareOptions()
	options.StripStyles = true
	service := newExcelService(tempDir, options)

	report, err := service.Compare(context.Background(), CompareRequest{
		File1: file1, File2: file2, Column: "PROMOTION CODE", Output: output,
	})
	require.NoError(t, err)

	assert.Equal(t, output, report.OutputPath)
	assert.Equal(t, []string{"PROMOTION CODE", "Discount", "Source"}, report.Columns)
	assert.Equal(t, compare.Counts{Both: 1, LeftOnly: 1, RightOnly: 1}, report.Counts)
	assert.Equal(t, []string{
		"SPRING|10|File 1",
		"WINTER|20|File 2",
	}, exportedRows(t, output))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "cleaned copies must be removed")
}

func TestCompareFilesIdempotent(t *testing.T) {
	dir := t.TempDir()
	file1 := saveWorkbook(t, filepath.Join(dir, "a.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{1, "x"}, []interface{}{2, "y"})
	file2 := saveWorkbook(t, filepath.Join(dir, "b.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{2, "y"}, []interface{}{3, "z"})
	service := newExcelService(t.TempDir(), DefaultCompareOptions())

	first, err := service.Compare(context.Background(), CompareRequest{File1: file1, File2: file2, Column: "ID", Output: filepath.Join(dir, "one.xlsx")})
	require.NoError(t, err)
	second, err := service.Compare(context.Background(), CompareRequest{File1: file1, File2: file2, Column: "ID", Output: filepath.Join(dir, "two.xlsx")})
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, exportedRows(t, first.OutputPath), exportedRows(t, second.OutputPath))
}

func TestCompareIdenticalFilesCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	rows := [][]interface{}{{"ID", "Name"}, {1, "x"}, {2, "y"}}
	file1 := saveWorkbook(t, filepath.Join(dir, "a.xlsx"), rows...)
	file2 := saveWorkbook(t, filepath.Join(dir, "b.xlsx"), rows...)
	output := filepath.Join(dir, "out", "never.xlsx")

	report, err := newExcelService(t.TempDir(), DefaultCompareOptions()).Compare(context.Background(),
		CompareRequest{File1: file1, File2: file2, Column: "id", Output: output})
	require.NoError(t, err)

	assert.False(t, report.HasMismatches())
	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestCompareFilesFailuresLeaveNoTempFiles(t *testing.T) {
	dir, tempDir := t.TempDir(), t.TempDir()
	file1 := saveWorkbook(t, filepath.Join(dir, "a.xlsx"), []interface{}{"ID"}, []interface{}{1})
	file2 := saveWorkbook(t, filepath.Join(dir, "b.xlsx"), []interface{}{"Code"}, []interface{}{1})

	options := DefaultCompareOptions()
	options.StripStyles = true
	service := newExcelService(tempDir, options)

	_, err := service.Compare(context.Background(), CompareRequest{File1: file1, File2: file2, Column: "ID", Output: filepath.Join(dir, "out.xlsx")})
	assert.Equal(t, errors.CodeColumnNotFound, errors.GetCode(err))

	_, err = service.Compare(context.Background(), CompareRequest{File1: file1, File2: filepath.Join(dir, "missing.xlsx"), Column: "ID"})
	assert.Equal(t, errors.CodeFileNotFound, errors.GetCode(err))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = os.Stat(filepath.Join(dir, "out.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompareMatchesNumberFormattedKeys(t *testing.T) {
	dir := t.TempDir()
	file1 := saveWorkbook(t, filepath.Join(dir, "a.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{1, "x"})
	file2 := saveWorkbook(t, filepath.Join(dir, "b.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{1, "x"})

	f, err := excelize.OpenFile(file2)
	require.NoError(t, err)
	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", twoDecimals))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	report, err := newExcelService(t.TempDir(), DefaultCompareOptions()).Compare(context.Background(),
		CompareRequest{File1: file1, File2: file2, Column: "ID"})
	require.NoError(t, err)

	assert.Equal(t, compare.Counts{Both: 1}, report.Counts)
	assert.Empty(t, report.Mismatches)
}

func TestCompareReportsFormattedKeysAsDisplayed(t *testing.T) {
	dir := t.TempDir()
	file1 := saveWorkbook(t, filepath.Join(dir, "a.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{1, "x"}, []interface{}{2, "y"})
	file2 := saveWorkbook(t, filepath.Join(dir, "b.xlsx"),
		[]interface{}{"ID", "Name"}, []interface{}{1, "x"}, []interface{}{3, "z"})

	f, err := excelize.OpenFile(file2)
	require.NoError(t, err)
	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A3", twoDecimals))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	output := filepath.Join(dir, "out.xlsx")
	report, err := newExcelService(t.TempDir(), DefaultCompareOptions()).Compare(context.Background(),
		CompareRequest{File1: file1, File2: file2, Column: "ID", Output: output})
	require.NoError(t, err)

	assert.Equal(t, compare.Counts{Both: 1, LeftOnly: 1, RightOnly: 1}, report.Counts)
	assert.Equal(t, []string{
		"2|y|File 1",
		"3.00|z|File 2",
	}, exportedRows(t, output))
}
