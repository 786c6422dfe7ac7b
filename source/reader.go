// Package source loads a CSV payload from a local file or the published sheet.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"toolfinder/sheet"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatSheet = "sheet"
)

// Reader returns the full CSV text of a tool sheet.
type Reader interface {
	Read(ctx context.Context, location string) (string, error)
}

func ReaderForFormat(format string, client sheet.Client) (Reader, error) {
	switch normalizeFormat(format) {
	case FormatCSV:
		return &CSVReader{}, nil
	case FormatExcel, "xlsx", "xlsm":
		return &ExcelReader{}, nil
	case FormatSheet, "remote":
		if client == nil {
			return nil, fmt.Errorf("no sheet configured: set sheet.id or sheet.url, or pass --input")
		}
		return &SheetReader{Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat picks the format for location. An explicit format wins; an
// empty location means the published sheet.
func InferFormat(location, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return normalizeFormat(format), nil
	}
	if strings.TrimSpace(location) == "" {
		return FormatSheet, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(location), "."))
	switch extension {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", location)
	}
}

// Load resolves the reader for location and reads it.
func Load(ctx context.Context, location, format string, client sheet.Client) (string, error) {
	resolved, err := InferFormat(location, format)
	if err != nil {
		return "", err
	}
	reader, err := ReaderForFormat(resolved, client)
	if err != nil {
		return "", err
	}
	return reader.Read(ctx, location)
}

// Describe returns a short label for history entries.
func Describe(location string) string {
	if strings.TrimSpace(location) == "" {
		return FormatSheet
	}
	return filepath.Base(location)
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
