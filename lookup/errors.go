package lookup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned for blank or whitespace-only queries.
	ErrEmptyQuery = errors.New("please enter a part number")
	// ErrSchema matches any *SchemaError via errors.Is.
	ErrSchema = errors.New("required columns not found")
)

// SchemaError reports required header columns missing from a payload.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ValidateQuery rejects queries that are empty after trimming whitespace.
// Shells call it before fetching so that no request is made for a blank input.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}
