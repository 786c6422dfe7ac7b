package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader returns a local CSV file as UTF-8 text with any byte order mark
// removed; tokenizing is left to lookup.
type CSVReader struct{}

func (r *CSVReader) Read(_ context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	// Excel's "CSV UTF-8" export starts with a BOM; UTF-16 exports carry one too.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	content, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", fmt.Errorf("read csv file %s: %w", path, err)
	}
	return string(content), nil
}
