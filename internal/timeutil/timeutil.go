package timeutil

import "time"

// StampLayout is fixed width so stored stamps sort lexically in time order.
const StampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// FormatStamp renders value in UTC using StampLayout.
func FormatStamp(value time.Time) string {
	return value.UTC().Format(StampLayout)
}

func ParseStamp(raw string) (time.Time, error) {
	return time.Parse(StampLayout, raw)
}
