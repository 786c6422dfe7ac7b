// Package lookup finds a part number in a CSV payload exported from the tool
// sheet. It is pure: no I/O, no caching and no shared state, so Search may be
// called from any number of goroutines.
package lookup

import (
	"strings"
)

// Matcher scans CSV payloads for part numbers.
type Matcher struct {
	parseRow func(string) []string
}

var defaultMatcher = Matcher{parseRow: ParseRow}

// Search looks up query in payload using the default tokenizer.
func Search(payload, query string) (Result, error) {
	return defaultMatcher.Search(payload, query)
}

// Search returns the first data row whose unique code normalizes to the same
// key as query. A payload without the required columns fails with a
// *SchemaError before any data row is read. No match is not an error.
func (m Matcher) Search(payload, query string) (Result, error) {
	if err := ValidateQuery(query); err != nil {
		return Result{}, err
	}

	parseRow := m.parseRow
	if parseRow == nil {
		parseRow = ParseRow
	}

	lines := splitLines(payload)
	header := NewHeaderIndex(parseRow(lines[0]))
	if missing := header.missing(requiredColumns...); len(missing) > 0 {
		return Result{}, &SchemaError{Missing: missing}
	}

	codeIdx, _ := header.Position(ColumnUniqueCode)
	toolIdx, _ := header.Position(ColumnToolToUse)
	want := NormalizeKey(query)

	for i, line := range lines[1:] {
		row := parseRow(line)
		if NormalizeKey(cell(row, codeIdx).Value) != want {
			continue
		}
		return Result{
			Found:    true,
			Row:      i + 1,
			Tools:    splitTools(cell(row, toolIdx).Value),
			Location: optionalCell(row, header, ColumnLocation),
			Date:     optionalCell(row, header, ColumnDate),
			Customer: optionalCell(row, header, ColumnCustomer),
			Remarks:  optionalCell(row, header, ColumnRemarks),
		}, nil
	}

	return Result{}, nil
}

func splitLines(payload string) []string {
	lines := strings.Split(payload, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func cell(row []string, idx int) Field {
	if idx < 0 || idx >= len(row) {
		return Field{}
	}
	return present(row[idx])
}

func optionalCell(row []string, header HeaderIndex, name string) Field {
	idx, ok := header.Position(name)
	if !ok {
		return Field{}
	}
	return cell(row, idx)
}

func splitTools(raw string) []string {
	tools := make([]string, 0, 4)
	for _, piece := range strings.Split(raw, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			tools = append(tools, piece)
		}
	}
	return tools
}
