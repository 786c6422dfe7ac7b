package lookup

// Field is an optional single-valued cell. Valid is false when the column is
// missing from the header or the row is too short to hold it.
type Field struct {
	Valid bool
	Value string
}

func present(value string) Field {
	return Field{Valid: true, Value: value}
}

// Or returns the value, or fallback when the field is absent or empty.
func (f Field) Or(fallback string) string {
	if !f.Valid || f.Value == "" {
		return fallback
	}
	return f.Value
}

// Result is the outcome of a lookup. Found is false for NotFound; every other
// field is then zero.
type Result struct {
	Found bool
	// Row is the 1-based data row of the match (header excluded).
	Row      int
	Tools    []string
	Location Field
	Date     Field
	Customer Field
	Remarks  Field
}
