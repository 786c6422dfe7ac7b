package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolfinder/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if path := viper.ConfigFileUsed(); path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Config file loaded from:", path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No config file loaded; using defaults and environment.")
		}
		printConfig(cmd.OutOrStdout(), *cfg)
		return nil
	},
}

func printConfig(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "sheet.id: %s\n", cfg.Sheet.ID)
	fmt.Fprintf(w, "sheet.name: %s\n", cfg.Sheet.Name)
	fmt.Fprintf(w, "sheet.url: %s\n", cfg.Sheet.URL)
	fmt.Fprintf(w, "sheet.timeout: %s\n", cfg.Sheet.Timeout)
	if cfg.HasRemoteSheet() {
		if client, err := newHTTPSheetClient(cfg); err != nil {
			fmt.Fprintf(w, "sheet export url: (invalid: %v)\n", err)
		} else {
			fmt.Fprintf(w, "sheet export url: %s\n", client.URL())
		}
	} else {
		fmt.Fprintln(w, "sheet export url: (none, use --input)")
	}
	fmt.Fprintf(w, "server.port: %d\n", cfg.Server.Port)
	fmt.Fprintf(w, "history.enabled: %t\n", cfg.History.Enabled)
	fmt.Fprintf(w, "history.db: %s\n", cfg.History.DB)
	fmt.Fprintf(w, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "log.format: %s\n", cfg.Log.Format)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
