package excel

// ExcelConfig holds configuration for reading and writing spreadsheet files
type ExcelConfig struct {
	TempDir     string `json:"temp_dir"`     // Where cleaned copies are written; empty means os.TempDir
	OutputSheet string `json:"output_sheet"` // Sheet name used for exported tables without one
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		OutputSheet: "Mismatches",
	}
}
