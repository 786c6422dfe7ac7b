package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"toolfinder/history"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []history.Entry) error {
	return writeTableCSVFile(path, historyHeaders, historyRows(entries))
}

func writeTableCSVFile(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	return writeTableCSV(file, headers, rows)
}

func writeTableCSV(out io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
