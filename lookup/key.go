package lookup

import "strings"

// NormalizeKey drops everything but ASCII letters and digits and lower-cases
// the rest. Two part numbers are equal when their normalized keys are equal.
func NormalizeKey(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}
