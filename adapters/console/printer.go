package console

import (
	"fmt"
	"io"
	"strings"

	"colcompare/adapters/markdown"
	"colcompare/domain/compare"
)

// Messages shown to users for each outcome
const (
	NoMismatchesMessage = "No mismatches found in the specified column."
	MismatchesHeading   = "Mismatched rows:"
	Separator           = "--------------------------------------------------"
)

// TextPrinter prints each mismatch as a block of "field: value" lines
type TextPrinter struct{}

// Print writes the report in plain text
func (TextPrinter) Print(w io.Writer, report *compare.Report) error {
	if !report.HasMismatches() {
		_, err := fmt.Fprintln(w, NoMismatchesMessage)
		return err
	}

	var b strings.Builder
	b.WriteString(MismatchesHeading + "\n")
	for _, m := range report.Mismatches {
		fmt.Fprintf(&b, "Row from %s:\n", m.Source)
		for _, col := range report.Columns {
			if col == compare.SourceField {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", col, m.Get(col))
		}
		b.WriteString(Separator + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// MarkdownPrinter prints the mismatches as one markdown table
type MarkdownPrinter struct{}

// Print writes the report as a markdown document
func (MarkdownPrinter) Print(w io.Writer, report *compare.Report) error {
	if !report.HasMismatches() {
		_, err := fmt.Fprintln(w, NoMismatchesMessage)
		return err
	}

	summary := fmt.Sprintf("%d only in one file (%d + %d), %d matched.",
		report.Counts.Mismatches(), report.Counts.LeftOnly, report.Counts.RightOnly, report.Counts.Both)
	doc := markdown.Document(fmt.Sprintf("Mismatches on %s", report.Column), summary, report.ToTable(""))

	_, err := io.WriteString(w, doc)
	return err
}

// OutputWrittenMessage reports where file mode put the mismatches
func OutputWrittenMessage(report *compare.Report) string {
	return fmt.Sprintf("%d mismatched rows written to %s", len(report.Mismatches), report.OutputPath)
}
