package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"toolfinder/config"
	"toolfinder/history"
	"toolfinder/internal/timeutil"
	"toolfinder/output"
	"toolfinder/storage"
)

var (
	historyLimit        int
	historyToday        bool
	historyExportOutput string
	historyExportFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect, export or clear recorded lookups.",
	Long: `Every search (CLI, batch and web UI) is recorded in the SQLite database at
history.db unless history.enabled is false or --no-history is set.

The history is an audit log only; lookups never read from it.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the most recent lookups",
	Example: `
  # Show the last 20 lookups
  toolfinder history list --limit 20

  # Only lookups made today
  toolfinder history list --today
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.ListLookups(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if historyToday {
			entries = entriesOnDay(entries, time.Now())
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lookups recorded.")
			return nil
		}

		for _, entry := range entries {
			tools := strings.Join(entry.Tools, ", ")
			if tools == "" {
				tools = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %-20s row=%-4d tools=%s source=%s\n",
				entry.CreatedAt.Local().Format(time.DateTime),
				entry.Outcome,
				entry.Query,
				entry.Row,
				tools,
				entry.Source,
			)
		}
		return nil
	},
}

// entriesOnDay keeps entries created during the local calendar day of day.
func entriesOnDay(entries []history.Entry, day time.Time) []history.Entry {
	start := timeutil.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	kept := entries[:0:0]
	for _, entry := range entries {
		if !entry.CreatedAt.Before(start) && entry.CreatedAt.Before(end) {
			kept = append(kept, entry)
		}
	}
	return kept
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded lookups to CSV/Excel",
	Long: `Export all recorded lookups, newest first.

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export to CSV
  toolfinder history export --output ./history.csv

  # Export to Excel
  toolfinder history export --output ./history.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := historyExportFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(historyExportOutput)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.ListLookups(cmd.Context(), 0)
		if err != nil {
			return err
		}
		if err := writer.Write(historyExportOutput, entries); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Lookups: %d, Format: %s, File: %s\n", len(entries), format, historyExportOutput)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one recorded lookup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.GetLookup(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrLookupNotFound) {
			return fmt.Errorf("no lookup with id %q", args[0])
		}
		if err != nil {
			return err
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	},
}

func printEntry(w io.Writer, entry history.Entry) {
	fmt.Fprintf(w, "id: %s\n", entry.ID)
	fmt.Fprintf(w, "time: %s\n", entry.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "query: %s\n", entry.Query)
	fmt.Fprintf(w, "key: %s\n", entry.Key)
	fmt.Fprintf(w, "outcome: %s\n", entry.Outcome)
	if entry.Row > 0 {
		fmt.Fprintf(w, "row: %d\n", entry.Row)
	}
	for i, tool := range entry.Tools {
		fmt.Fprintf(w, "tool %d: %s\n", i+1, tool)
	}
	fmt.Fprintf(w, "source: %s\n", entry.Source)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteAllLookups(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "History cleared. Lookups deleted: %d\n", deleted)
		return nil
	},
}

// openHistoryStore opens the history database even when recording is
// disabled, so old entries can still be read or cleared.
func openHistoryStore() (*storage.SQLiteStore, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.History.DB) == "" {
		return nil, fmt.Errorf("history.db is not configured")
	}
	return storage.OpenSQLite(cfg.History.DB)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd, historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of lookups to print (0 for all)")
	historyListCmd.Flags().BoolVar(&historyToday, "today", false, "Only show lookups made today")

	historyExportCmd.Flags().StringVarP(&historyExportOutput, "output", "o", "", "Output file path")
	historyExportCmd.Flags().StringVarP(&historyExportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	_ = historyExportCmd.MarkFlagRequired("output")
}
