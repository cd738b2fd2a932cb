package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"colcompare/domain/core"
	"colcompare/internal"
	"colcompare/internal/errors"

	"github.com/xuri/excelize/v2"
)

// defaultStyleID is the workbook's built-in "Normal" cell format
const defaultStyleID = 0

// StyleSanitizer writes a copy of a workbook with every used cell reset to
// the default style, for workbooks whose style metadata breaks loading.
type StyleSanitizer struct {
	tempDir string
	logger  *internal.Logger
}

// NewStyleSanitizer creates a sanitizer writing copies under tempDir
// (os.TempDir when empty)
func NewStyleSanitizer(tempDir string, logger *internal.Logger) *StyleSanitizer {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &StyleSanitizer{tempDir: tempDir, logger: logger}
}

// Sanitize returns the path of a cleaned copy and a cleanup that removes it.
// CSV files carry no styling and are returned as-is with a no-op cleanup.
// On error no copy is left behind and cleanup is a no-op.
func (s *StyleSanitizer) Sanitize(ctx context.Context, path string) (string, func(), error) {
	noop := func() {}
	if err := ctx.Err(); err != nil {
		return "", noop, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", noop, errors.FileNotFound(path, err)
		}
		return "", noop, errors.ParseError(path, err)
	}
	if detectFileType(path) != fileTypeXLSX {
		return path, noop, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", noop, errors.ParseError(path, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if err := resetSheetStyles(f, sheet); err != nil {
			return "", noop, errors.ParseError(path, err)
		}
	}

	cleaned := s.tempPath(path)
	if err := f.SaveAs(cleaned); err != nil {
		os.Remove(cleaned)
		return "", noop, errors.Wrapf(err, "failed to save cleaned copy of %s", path)
	}
	s.logger.Debug("[StyleSanitizer] %s cleaned into %s", path, cleaned)

	cleanup := func() {
		if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("[StyleSanitizer] failed to remove %s: %v", cleaned, err)
		}
	}
	return cleaned, cleanup, nil
}

// tempPath names the cleaned copy after the input plus a unique suffix, so
// repeated or parallel runs over the same file never collide.
func (s *StyleSanitizer) tempPath(path string) string {
	dir := s.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, fmt.Sprintf("%s.cleaned-%s%s", base, core.NewID().Short(), ext))
}

// resetSheetStyles resets every cell inside the sheet's used range: the
// declared dimension, widened to any value-bearing cell outside it.
func resetSheetStyles(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	width, height := 0, len(rows)
	for _, row := range rows {
		width = max(width, len(row))
	}

	dimension, err := f.GetSheetDimension(sheet)
	if err != nil {
		return fmt.Errorf("failed to read dimension of sheet %q: %w", sheet, err)
	}
	if dimension != "" {
		refs := strings.Split(dimension, ":")
		col, row, err := excelize.CellNameToCoordinates(refs[len(refs)-1])
		if err != nil {
			return fmt.Errorf("invalid dimension %q of sheet %q: %w", dimension, sheet, err)
		}
		width, height = max(width, col), max(height, row)
	}
	if width == 0 || height == 0 {
		return nil
	}

	bottomRight, err := excelize.CoordinatesToCellName(width, height)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", bottomRight, defaultStyleID)
}
