package cmd

import (
	"testing"

	"toolfinder/config"
)

func TestNewSheetClient_NilWithoutSheet(t *testing.T) {
	t.Parallel()

	client, err := newSheetClient(config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client interface, got %T", client)
	}

	client, err = newSheetClient(config.Config{Sheet: config.SheetConfig{ID: "abc", Name: "Sheet1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatalf("expected client for configured sheet")
	}
}
