package app

import (
	"context"
	"fmt"

	"colcompare/domain/compare"
	"colcompare/domain/core"
	"colcompare/internal"
	"colcompare/internal/errors"
	"colcompare/ports"
)

// CompareOptions are the per-service settings of a comparison
type CompareOptions struct {
	MatchMode   compare.MatchMode
	StripStyles bool   // Load from style-reset copies of the inputs
	KeyLabel    string // Display name of the key column; empty uses the requested name
	Labels      compare.Labels
}

// DefaultCompareOptions returns normalized matching with "File 1"/"File 2" labels
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{
		MatchMode: compare.ColumnMatchNormalized,
		Labels:    compare.DefaultLabels(),
	}
}

// CompareRequest names the inputs of one comparison. Output is optional;
// without it the caller prints the returned report.
type CompareRequest struct {
	File1  string
	File2  string
	Column string
	Output string
	Sheet1 string
	Sheet2 string
}

// ComparatorService finds rows whose key column value exists in only one of two files
type ComparatorService struct {
	reader    ports.TableReaderPort
	writer    ports.TableWriterPort
	sanitizer ports.SanitizerPort
	options   CompareOptions
	logger    *internal.Logger
}

// NewComparatorService creates a comparator. sanitizer may be nil when
// StripStyles is off.
func NewComparatorService(
	reader ports.TableReaderPort,
	writer ports.TableWriterPort,
	sanitizer ports.SanitizerPort,
	options CompareOptions,
	logger *internal.Logger,
) *ComparatorService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if options.Labels == (compare.Labels{}) {
		options.Labels = compare.DefaultLabels()
	}
	return &ComparatorService{
		reader:    reader,
		writer:    writer,
		sanitizer: sanitizer,
		options:   options,
		logger:    logger,
	}
}

// Compare loads both files, joins them on the requested column and returns
// the rows found in only one of them. When req.Output is set and there are
// mismatches they are written there; with no mismatches nothing is written.
// Cleaned input copies are removed before Compare returns, on every path.
func (s *ComparatorService) Compare(ctx context.Context, req CompareRequest) (*compare.Report, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	runID := core.NewRunID()
	s.logger.Info("[Compare] run %s: %s vs %s on %q", runID, req.File1, req.File2, req.Column)

	path1, cleanup1, err := s.prepare(ctx, req.File1)
	defer cleanup1()
	if err != nil {
		return nil, err
	}
	path2, cleanup2, err := s.prepare(ctx, req.File2)
	defer cleanup2()
	if err != nil {
		return nil, err
	}

	left, err := s.reader.ReadTable(ctx, path1, req.Sheet1)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", req.File1)
	}
	left.Name = req.File1

	right, err := s.reader.ReadTable(ctx, path2, req.Sheet2)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", req.File2)
	}
	right.Name = req.File2

	leftKey, rightKey, err := compare.ResolveKeyColumns(left, right, req.Column, s.options.MatchMode)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[Compare] key column resolved to %q / %q (%s match)", leftKey, rightKey, s.options.MatchMode)

	keyLabel := s.options.KeyLabel
	if keyLabel == "" {
		keyLabel = req.Column
	}

	joined := compare.OuterJoin(left, right, leftKey, rightKey)
	schema := compare.NewSchema(left, right, leftKey, rightKey, keyLabel)
	records := schema.Mismatches(joined, s.options.Labels)

	report := &compare.Report{
		RunID:       runID,
		Column:      req.Column,
		LeftColumn:  leftKey,
		RightColumn: rightKey,
		Columns:     schema.Columns,
		Mismatches:  records,
		Counts:      compare.CountTags(joined),
		Fingerprint: compare.ComputeFingerprint(schema.Columns, records),
	}
	s.logger.Info("[Compare] run %s: %d matched, %d only in %s, %d only in %s (fingerprint %s)",
		runID, report.Counts.Both, report.Counts.LeftOnly, s.options.Labels.Left,
		report.Counts.RightOnly, s.options.Labels.Right, report.Fingerprint)

	if !report.HasMismatches() || req.Output == "" {
		return report, nil
	}

	written, err := s.writer.WriteTable(ctx, req.Output, report.ToTable(req.Output))
	if err != nil {
		return nil, err
	}
	report.OutputPath = written
	return report, nil
}

// prepare returns the path to load for one input. The cleanup is never nil.
func (s *ComparatorService) prepare(ctx context.Context, path string) (string, func(), error) {
	if !s.options.StripStyles || s.sanitizer == nil {
		return path, func() {}, nil
	}
	cleaned, cleanup, err := s.sanitizer.Sanitize(ctx, path)
	if cleanup == nil {
		cleanup = func() {}
	}
	if err != nil {
		return "", cleanup, errors.Wrapf(err, "failed to clean styles of %s", path)
	}
	return cleaned, cleanup, nil
}

func validateRequest(req CompareRequest) error {
	switch {
	case req.File1 == "" || req.File2 == "":
		return errors.InvalidInput("two input files are required")
	case req.Column == "":
		return errors.InvalidInput("a key column is required")
	}
	return nil
}

// UserMessage turns a Compare error into the line shown to the user
func UserMessage(err error, column string) string {
	switch errors.GetCode(err) {
	case errors.CodeFileNotFound:
		return "Error: One or both files not found."
	case errors.CodeColumnNotFound:
		return fmt.Sprintf("Error: Column '%s' not found in one or both files.", column)
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
