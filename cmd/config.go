package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the toolfinder configuration file.",
	Long: `Create, edit and display the toolfinder configuration file.

The configuration stores:
- sheet.id / sheet.name / sheet.url / sheet.timeout
- server.port
- history.enabled / history.db
- log.level / log.format

Every key can also be set through the environment, e.g. TOOLFINDER_SHEET_ID.`,
	Example: `
  # Create default config in $HOME/.toolfinder.yaml
  toolfinder config create

  # Show active config and source file
  toolfinder config show

  # Open active config in editor (creates example if missing)
  toolfinder config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
