/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"toolfinder/config"
	"toolfinder/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolfinder",
	Short: "Look up which tools a part number needs from the published tool sheet.",
	Long: `
**********************************************
*               TOOL FINDER                  *
**********************************************

This CLI fetches the published tool sheet as CSV, finds the row whose
"Unique Code" matches a part number (ignoring case and punctuation) and shows
the tools to use together with location, manufacturing date, customer and remarks.

Supported sources:
- Published Google sheet (sheet.id / sheet.url in config)
- CSV: .csv
- Excel: .xlsx, .xlsm (first sheet)
`,
	Example: `
  # Create configuration file
  toolfinder config create

  # Look up one part number in the published sheet
  toolfinder search AB-12

  # Look up a part number in a local export
  toolfinder search AB-12 --input ./tools.xlsx

  # Look up many part numbers at once
  toolfinder batch --queries ./parts.txt --output ./results.csv

  # Start the local web UI
  toolfinder serve

  # Export the lookup history
  toolfinder history export --output ./history.xlsx
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString(config.KeyLogLevel)
		if cmd.Flags().Changed("log-level") || strings.TrimSpace(level) == "" {
			level = logLevel
		}
		built, err := logging.New(level, viper.GetString(config.KeyLogFormat))
		if err != nil {
			return err
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.toolfinder.yaml, then ./.toolfinder.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error (overrides log.level)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".toolfinder" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".toolfinder")
	}

	config.BindEnv(viper.GetViper())

	// A missing file is fine: defaults and TOOLFINDER_* variables still apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: reading config failed: %v\n", err)
		}
	}
}
