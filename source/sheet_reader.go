package source

import (
	"context"

	"toolfinder/sheet"
)

// SheetReader fetches the published sheet; the location argument is ignored.
type SheetReader struct {
	Client sheet.Client
}

func (r *SheetReader) Read(ctx context.Context, _ string) (string, error) {
	return r.Client.FetchCSV(ctx)
}
