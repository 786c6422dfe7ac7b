package output

import "toolfinder/lookup"

// ResultView is the JSON shape of a lookup. Optional fields are null when the
// column or cell is absent and "" when the cell is present but empty.
type ResultView struct {
	Query    string   `json:"query"`
	Found    bool     `json:"found"`
	Row      int      `json:"row,omitempty"`
	Tools    []string `json:"tools"`
	Location *string  `json:"location"`
	Date     *string  `json:"date"`
	Customer *string  `json:"customer"`
	Remarks  *string  `json:"remarks"`
	Pairs    []Pair   `json:"pairs"`
}

func NewResultView(query string, result lookup.Result) ResultView {
	view := ResultView{
		Query: query,
		Found: result.Found,
		Row:   result.Row,
		Tools: result.Tools,
		Pairs: Pairs(result),
	}
	if result.Found {
		view.Location = fieldPtr(result.Location)
		view.Date = fieldPtr(result.Date)
		view.Customer = fieldPtr(result.Customer)
		view.Remarks = fieldPtr(result.Remarks)
	}
	if view.Tools == nil {
		view.Tools = []string{}
	}
	if view.Pairs == nil {
		view.Pairs = []Pair{}
	}
	return view
}

func fieldPtr(field lookup.Field) *string {
	if !field.Valid {
		return nil
	}
	value := field.Value
	return &value
}
