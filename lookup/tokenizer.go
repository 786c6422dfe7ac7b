package lookup

import "strings"

// ParseRow splits one CSV line into fields. A doubled quote inside a quoted
// section yields a literal quote, commas inside quotes are kept, and the last
// field is always flushed, so an empty line gives one empty field.
// Unbalanced quotes are tolerated: whatever is buffered becomes the final field.
func ParseRow(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		char := line[i]
		switch {
		case char == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}

	return append(fields, current.String())
}
