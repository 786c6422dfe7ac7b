package lookup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain fields", line: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "comma inside quotes", line: `"a,b",c`, want: []string{"a,b", "c"}},
		{name: "doubled quote", line: `"a""b",c`, want: []string{`a"b`, "c"}},
		{name: "empty line", line: "", want: []string{""}},
		{name: "trailing comma", line: "a,", want: []string{"a", ""}},
		{name: "only commas", line: ",,", want: []string{"", "", ""}},
		{name: "empty quoted field", line: `"",x`, want: []string{"", "x"}},
		{name: "quotes mid field", line: `ab"c,d"e,f`, want: []string{"abc,de", "f"}},
		{name: "unbalanced quote flushes buffer", line: `a,"b,c`, want: []string{"a", "b,c"}},
		{name: "spaces preserved", line: " a , b ", want: []string{" a ", " b "}},
		{name: "utf8 passes through", line: `"Bohrer, Ø6",Halle`, want: []string{"Bohrer, Ø6", "Halle"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseRow(tc.line)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseRow(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func TestParseRow_NeverEmpty(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", `"`, `""`, ",", `"""`} {
		if got := ParseRow(line); len(got) == 0 {
			t.Fatalf("ParseRow(%q) returned no fields", line)
		}
	}
}
