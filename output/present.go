package output

import (
	"fmt"

	"toolfinder/lookup"
)

const (
	// Placeholder is shown for absent or empty optional fields.
	Placeholder   = "N/A"
	NoResultsText = "No results found"
)

// Pair is one label/value line of a result panel.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Pairs lays out a found result: one "Tool N" pair per tool followed by the
// four single-valued fields. It returns nil for a NotFound result.
func Pairs(result lookup.Result) []Pair {
	if !result.Found {
		return nil
	}

	pairs := make([]Pair, 0, len(result.Tools)+4)
	for i, tool := range result.Tools {
		pairs = append(pairs, Pair{Label: fmt.Sprintf("Tool %d", i+1), Value: tool})
	}
	return append(pairs,
		Pair{Label: "Location", Value: result.Location.Or(Placeholder)},
		Pair{Label: "Date of Manufacturing", Value: result.Date.Or(Placeholder)},
		Pair{Label: "Customer Name", Value: result.Customer.Or(Placeholder)},
		Pair{Label: "Remarks", Value: result.Remarks.Or(Placeholder)},
	)
}
