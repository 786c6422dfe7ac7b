package output

import (
	"fmt"
	"io"
	"strings"

	"toolfinder/history"
	"toolfinder/lookup"
)

// BatchRow is the outcome of one query in a batch lookup.
type BatchRow struct {
	Query  string
	Result lookup.Result
	Err    error
}

var batchHeaders = []string{"Query", "Outcome", "Tools", "Location", "Date of Manufacturing", "Customer Name", "Remarks", "Error"}

func batchRows(rows []BatchRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := []string{row.Query, string(history.OutcomeFor(row.Result, row.Err)), "", "", "", "", "", ""}
		if row.Err != nil {
			record[7] = row.Err.Error()
		} else if row.Result.Found {
			record[2] = strings.Join(row.Result.Tools, ", ")
			record[3] = row.Result.Location.Or(Placeholder)
			record[4] = row.Result.Date.Or(Placeholder)
			record[5] = row.Result.Customer.Or(Placeholder)
			record[6] = row.Result.Remarks.Or(Placeholder)
		}
		out = append(out, record)
	}
	return out
}

// WriteBatch writes batch results to path in the given format ("csv" or "excel").
func WriteBatch(path, format string, rows []BatchRow) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeTableCSVFile(path, batchHeaders, batchRows(rows))
	case "excel", "xlsx":
		return writeTableExcel(path, batchHeaders, batchRows(rows))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteBatchCSV streams batch results as CSV, e.g. to stdout.
func WriteBatchCSV(w io.Writer, rows []BatchRow) error {
	return writeTableCSV(w, batchHeaders, batchRows(rows))
}
