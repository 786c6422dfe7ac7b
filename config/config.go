package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeySheetID        = "sheet.id"
	KeySheetName      = "sheet.name"
	KeySheetURL       = "sheet.url"
	KeySheetTimeout   = "sheet.timeout"
	KeyServerPort     = "server.port"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryDB      = "history.db"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"

	EnvPrefix = "TOOLFINDER"
)

type Config struct {
	Sheet   SheetConfig   `mapstructure:"sheet"`
	Server  ServerConfig  `mapstructure:"server"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

type SheetConfig struct {
	ID      string        `mapstructure:"id"`
	Name    string        `mapstructure:"name" validate:"required"`
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DB      string `mapstructure:"db" validate:"required_if=Enabled true"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// HasRemoteSheet reports whether a published sheet is configured.
func (c Config) HasRemoteSheet() bool {
	return strings.TrimSpace(c.Sheet.ID) != "" || strings.TrimSpace(c.Sheet.URL) != ""
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# toolfinder configuration
sheet:
  # ID of the published Google spreadsheet (the part between /d/ and /edit).
  id: ""
  name: "Sheet1"
  # Optional full CSV export URL; overrides id/name when set.
  url: ""
  timeout: 30s

server:
  port: 8080

history:
  enabled: true
  db: "./toolfinder.db"

log:
  level: "info"
  format: "console"
`
}

// BindEnv makes every known key overridable by a TOOLFINDER_* variable,
// e.g. TOOLFINDER_SHEET_ID.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Sheet.ID = strings.TrimSpace(cfg.Sheet.ID)
	cfg.Sheet.URL = strings.TrimSpace(cfg.Sheet.URL)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if strings.ContainsAny(cfg.Sheet.ID, "/?# ") {
		return nil, fmt.Errorf("validation failed: sheet.id %q must be the bare spreadsheet ID, not a URL", cfg.Sheet.ID)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySheetID, "")
	v.SetDefault(KeySheetName, "Sheet1")
	v.SetDefault(KeySheetURL, "")
	v.SetDefault(KeySheetTimeout, 30*time.Second)
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryDB, "./toolfinder.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}
