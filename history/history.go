package history

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolfinder/lookup"
	"toolfinder/sheet"
)

// Outcome classifies how a lookup ended.
type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeEmptyQuery     Outcome = "empty_query"
	OutcomeSchemaError    Outcome = "schema_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeError          Outcome = "error"
)

// Entry is one recorded lookup, shared by storage and the history exporters.
type Entry struct {
	ID        string
	Query     string
	Key       string
	Outcome   Outcome
	Row       int
	Tools     []string
	Source    string
	CreatedAt time.Time
}

// NewEntry builds an entry for a finished lookup.
func NewEntry(query, source string, result lookup.Result, err error) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Query:     strings.TrimSpace(query),
		Key:       lookup.NormalizeKey(query),
		Outcome:   OutcomeFor(result, err),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	if entry.Outcome == OutcomeFound {
		entry.Row = result.Row
		entry.Tools = append([]string(nil), result.Tools...)
	}
	return entry
}

func OutcomeFor(result lookup.Result, err error) Outcome {
	switch {
	case err == nil && result.Found:
		return OutcomeFound
	case err == nil:
		return OutcomeNotFound
	case errors.Is(err, lookup.ErrEmptyQuery):
		return OutcomeEmptyQuery
	case errors.Is(err, lookup.ErrSchema):
		return OutcomeSchemaError
	case errors.Is(err, sheet.ErrTransport):
		return OutcomeTransportError
	default:
		return OutcomeError
	}
}
