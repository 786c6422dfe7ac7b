package lookup

import "testing"

func TestHeaderIndex_ResolvesUniqueCodeAnyCasingAndQuoting(t *testing.T) {
	t.Parallel()

	headers := [][]string{
		{"Unique Code", "Tool to Use"},
		{"x", "UNIQUE CODE"},
		{"x", "y", `"unique code"`},
		{`"Unique Code "`},
		{"uNiQuE cOdE "},
	}
	wantPositions := []int{0, 1, 2, 0, 0}

	for i, cells := range headers {
		index := NewHeaderIndex(cells)
		pos, ok := index.Position(ColumnUniqueCode)
		if !ok {
			t.Fatalf("header %q: unique code not resolved", cells)
		}
		if pos != wantPositions[i] {
			t.Fatalf("header %q: want position %d, got %d", cells, wantPositions[i], pos)
		}
	}
}

func TestHeaderIndex_StripsQuotesBeforeTrimming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want string
	}{
		{cell: `"Unique Code"`, want: "unique code"},
		{cell: `" Unique Code "`, want: "unique code"},
		{cell: `  Unique Code  `, want: "unique code"},
		{cell: `  "Unique Code"  `, want: `"unique code"`},
		{cell: `""Unique Code""`, want: `"unique code"`},
	}

	for _, tc := range tests {
		if got := normalizeHeader(tc.cell); got != tc.want {
			t.Fatalf("normalizeHeader(%q): want %q, got %q", tc.cell, tc.want, got)
		}
	}

	if _, ok := NewHeaderIndex([]string{`  "Unique Code"  `}).Position(ColumnUniqueCode); ok {
		t.Fatalf("expected quote behind whitespace to keep the column unresolved")
	}
}

func TestHeaderIndex_ThroughTokenizer(t *testing.T) {
	t.Parallel()

	index := NewHeaderIndex(ParseRow(`"Remarks","UNIQUE CODE","Tool To Use"`))
	if pos, ok := index.Position("Unique Code"); !ok || pos != 1 {
		t.Fatalf("unexpected unique code position: %d (found=%t)", pos, ok)
	}
	if pos, ok := index.Position("tool to use"); !ok || pos != 2 {
		t.Fatalf("unexpected tool position: %d (found=%t)", pos, ok)
	}
	if _, ok := index.Position(ColumnLocation); ok {
		t.Fatalf("expected location to be absent")
	}
}

func TestHeaderIndex_DuplicateNameKeepsFirst(t *testing.T) {
	t.Parallel()

	index := NewHeaderIndex([]string{"Location", "unique code", "location"})
	if pos, _ := index.Position(ColumnLocation); pos != 0 {
		t.Fatalf("expected first location column, got %d", pos)
	}
}
