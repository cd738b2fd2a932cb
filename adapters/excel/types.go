package excel

import (
	"path/filepath"
	"strings"
)

// File types understood by the reader and writer
const (
	fileTypeXLSX     = "xlsx"
	fileTypeCSV      = "csv"
	fileTypeMarkdown = "markdown"
	fileTypeHTML     = "html"
)

// detectFileType maps a path's extension to a file type, or "" if unsupported
func detectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return fileTypeXLSX
	case ".csv":
		return fileTypeCSV
	case ".md", ".markdown":
		return fileTypeMarkdown
	case ".html", ".htm":
		return fileTypeHTML
	default:
		return ""
	}
}
