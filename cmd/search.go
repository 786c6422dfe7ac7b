package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolfinder/config"
	"toolfinder/lookup"
	"toolfinder/output"
	"toolfinder/source"
)

var (
	searchInput     string
	searchFormat    string
	searchJSON      bool
	searchNoHistory bool
)

var searchCmd = &cobra.Command{
	Use:   "search <part-number>",
	Short: "Look up the tools for one part number",
	Long: `Fetch the tool sheet (or read --input), find the first row whose "Unique Code"
matches the part number and print the result panel.

Matching ignores case and every character that is not a letter or digit,
so "AB-12", "ab 12" and "Ab12!" all find the same row. A part number that
is not in the sheet is not an error; an empty part number is.`,
	Example: `
  # Look up in the published sheet from config
  toolfinder search AB-12

  # Look up in a local CSV export and print JSON
  toolfinder search "AB 12" --input ./tools.csv --json

  # Force the format of a file without a known extension
  toolfinder search X1 --input ./export.dat --format csv
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		client, err := newSheetClient(*cfg)
		if err != nil {
			return err
		}
		store, err := openHistory(*cfg, searchNoHistory)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		result, err := runSearch(cmd.Context(), searchInput, searchFormat, query, func(ctx context.Context, location, format string) (string, error) {
			return source.Load(ctx, location, format, client)
		})
		recordLookup(cmd.Context(), store, query, source.Describe(searchInput), result, err)
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), query, result, searchJSON)
	},
}

type payloadLoader func(ctx context.Context, location, format string) (string, error)

// runSearch validates query before anything is loaded.
func runSearch(ctx context.Context, location, format, query string, load payloadLoader) (lookup.Result, error) {
	if err := lookup.ValidateQuery(query); err != nil {
		return lookup.Result{}, err
	}

	payload, err := load(ctx, location, format)
	if err != nil {
		return lookup.Result{}, err
	}
	logger.Debug("payload loaded", zap.String("source", source.Describe(location)), zap.Int("bytes", len(payload)))

	return lookup.Search(payload, query)
}

func printResult(w io.Writer, query string, result lookup.Result, asJSON bool) error {
	if !asJSON {
		return output.RenderPanel(w, query, result)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output.NewResultView(strings.TrimSpace(query), result)); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchInput, "input", "i", "", "Local CSV/Excel file to search instead of the published sheet")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "", "Input format: csv|excel|sheet (optional, inferred from --input)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the result as JSON")
	searchCmd.Flags().BoolVar(&searchNoHistory, "no-history", false, "Do not record this lookup in the history database")
}
