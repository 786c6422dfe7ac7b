package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReader converts the first sheet of a workbook into CSV text so that it
// goes through the same tokenizer as a published sheet.
type ExcelReader struct{}

func (r *ExcelReader) Read(_ context.Context, path string) (string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %s is empty", sheetName)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := writer.Write(singleLineCells(row)); err != nil {
			return "", fmt.Errorf("encode sheet %s: %w", sheetName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("encode sheet %s: %w", sheetName, err)
	}

	return buf.String(), nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLineCells folds Alt+Enter line breaks into spaces; the payload is
// tokenized one line per record.
func singleLineCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = lineBreaks.Replace(cell)
	}
	return out
}
