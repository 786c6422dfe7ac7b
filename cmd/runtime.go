package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"toolfinder/config"
	"toolfinder/history"
	"toolfinder/lookup"
	"toolfinder/sheet"
	"toolfinder/storage"
)

const userAgent = "toolfinder/1.0"

// newSheetClient returns nil when no published sheet is configured, so that
// local inputs work without one.
func newSheetClient(cfg config.Config) (sheet.Client, error) {
	if !cfg.HasRemoteSheet() {
		return nil, nil
	}
	client, err := newHTTPSheetClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newHTTPSheetClient(cfg config.Config) (*sheet.HTTPClient, error) {
	client, err := sheet.NewClient(sheet.ClientConfig{
		URL:       cfg.Sheet.URL,
		SheetID:   cfg.Sheet.ID,
		SheetName: cfg.Sheet.Name,
		Timeout:   cfg.Sheet.Timeout,
		UserAgent: userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("configure sheet client: %w", err)
	}
	return client, nil
}

// openHistory returns nil when history is disabled in config or by flag.
func openHistory(cfg config.Config, disabled bool) (*storage.SQLiteStore, error) {
	if disabled || !cfg.History.Enabled {
		return nil, nil
	}
	return storage.OpenSQLite(cfg.History.DB)
}

// recordLookup stores a finished lookup; failures are logged, never returned,
// since the lookup itself already succeeded or failed on its own terms.
func recordLookup(ctx context.Context, store *storage.SQLiteStore, query, source string, result lookup.Result, err error) {
	if store == nil {
		return
	}
	entry := history.NewEntry(query, source, result, err)
	if insertErr := store.InsertLookup(ctx, entry); insertErr != nil {
		logger.Warn("record lookup history", zap.Error(insertErr), zap.String("query", entry.Query))
	}
}
