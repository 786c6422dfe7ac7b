package lookup

import "strings"

// Recognized column names, already in normalized form.
const (
	ColumnUniqueCode = "unique code"
	ColumnToolToUse  = "tool to use"
	ColumnLocation   = "location"
	ColumnDate       = "tool manufacturing date"
	ColumnCustomer   = "customer name"
	ColumnRemarks    = "remarks"
)

var requiredColumns = []string{ColumnUniqueCode, ColumnToolToUse}

// HeaderIndex maps normalized column names to zero-based positions.
type HeaderIndex struct {
	positions map[string]int
}

// NewHeaderIndex builds an index from the raw cells of the header row.
// When a name repeats, the leftmost column wins.
func NewHeaderIndex(cells []string) HeaderIndex {
	positions := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := normalizeHeader(cell)
		if _, exists := positions[name]; exists {
			continue
		}
		positions[name] = i
	}
	return HeaderIndex{positions: positions}
}

// Position returns the column position of name, matched case-insensitively.
func (h HeaderIndex) Position(name string) (int, bool) {
	pos, ok := h.positions[normalizeHeader(name)]
	return pos, ok
}

func (h HeaderIndex) missing(names ...string) []string {
	var out []string
	for _, name := range names {
		if _, ok := h.Position(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// normalizeHeader strips one leading and one trailing quote, then trims and
// lower-cases. A quote behind surrounding whitespace is kept.
func normalizeHeader(cell string) string {
	cell = strings.TrimPrefix(cell, `"`)
	cell = strings.TrimSuffix(cell, `"`)
	return strings.ToLower(strings.TrimSpace(cell))
}
