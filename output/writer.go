package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"toolfinder/history"
)

// Writer exports recorded lookups to a file.
type Writer interface {
	Write(path string, entries []history.Entry) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat infers csv or excel from a file extension, defaulting to csv.
func DetectFormat(path string) string {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var historyHeaders = []string{"ID", "CreatedAt", "Query", "Key", "Outcome", "Row", "Tools", "Source"}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.ID,
			entry.CreatedAt.Format(time.RFC3339),
			entry.Query,
			entry.Key,
			string(entry.Outcome),
			strconv.Itoa(entry.Row),
			strings.Join(entry.Tools, ", "),
			entry.Source,
		})
	}
	return rows
}
