package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`sheet:
  id: "1dvK3H3O4muMGV7NDVsXMYz0Syovo5Af2ddfKfbFmAgg"
`))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Sheet.Name != "Sheet1" {
		t.Fatalf("unexpected default sheet name: %q", cfg.Sheet.Name)
	}
	if cfg.Sheet.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.Sheet.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if !cfg.History.Enabled || cfg.History.DB != "./toolfinder.db" {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if !cfg.HasRemoteSheet() {
		t.Fatalf("expected remote sheet to be configured")
	}
}

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
	if cfg.HasRemoteSheet() {
		t.Fatalf("example config must not point at a sheet")
	}
}

func TestValidateYAMLContent_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad url", content: "sheet:\n  url: \"not a url\"\n", wantErr: "validation failed"},
		{name: "port out of range", content: "server:\n  port: 70000\n", wantErr: "validation failed"},
		{name: "unknown log level", content: "log:\n  level: \"loud\"\n", wantErr: "validation failed"},
		{name: "history without db", content: "history:\n  enabled: true\n  db: \"\"\n", wantErr: "validation failed"},
		{name: "sheet id is url", content: "sheet:\n  id: \"https://docs.google.com/spreadsheets/d/abc\"\n", wantErr: "bare spreadsheet ID"},
		{name: "zero timeout", content: "sheet:\n  timeout: 0s\n", wantErr: "validation failed"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateYAMLContent([]byte(tc.content))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateYAMLContent_NormalizesLogLevelCase(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("log:\n  level: \"DEBUG\"\n  format: \"JSON\"\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestBindEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("TOOLFINDER_SHEET_ID", "abc123")
	t.Setenv("TOOLFINDER_SERVER_PORT", "9191")
	t.Setenv("TOOLFINDER_HISTORY_ENABLED", "false")
	t.Setenv("TOOLFINDER_LOG_LEVEL", "WARN")

	v := viper.New()
	setDefaults(v)
	BindEnv(v)

	cfg, err := loadAndValidateFromViper(v)
	if err != nil {
		t.Fatalf("expected env config to validate: %v", err)
	}
	if cfg.Sheet.ID != "abc123" || !cfg.HasRemoteSheet() {
		t.Fatalf("unexpected sheet id from env: %q", cfg.Sheet.ID)
	}
	if cfg.Server.Port != 9191 {
		t.Fatalf("unexpected port from env: %d", cfg.Server.Port)
	}
	if cfg.History.Enabled {
		t.Fatalf("expected history disabled from env")
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("unexpected log level from env: %q", cfg.Log.Level)
	}
	if cfg.Sheet.Name != "Sheet1" {
		t.Fatalf("expected default sheet name to survive, got %q", cfg.Sheet.Name)
	}
}

func TestBindEnv_InvalidValueFailsValidation(t *testing.T) {
	t.Setenv("TOOLFINDER_SERVER_PORT", "70000")

	v := viper.New()
	setDefaults(v)
	BindEnv(v)

	if _, err := loadAndValidateFromViper(v); err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error for env port, got %v", err)
	}
}
