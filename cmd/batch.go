package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"toolfinder/config"
	"toolfinder/lookup"
	"toolfinder/output"
	"toolfinder/source"
	"toolfinder/storage"
)

var (
	batchQueries      string
	batchInput        string
	batchFormat       string
	batchOutput       string
	batchOutputFormat string
	batchWorkers      int
	batchNoHistory    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Look up many part numbers against one fetch of the sheet",
	Long: `Read part numbers (one per line, blank lines ignored) and look each one up.

The sheet is fetched once; the lookups then run in parallel against that
payload. Results keep the order of the input. Part numbers that are not
found are reported with outcome "not_found" rather than failing the run.`,
	Example: `
  # Look up part numbers from a file, print CSV to stdout
  toolfinder batch --queries ./parts.txt

  # Read part numbers from stdin and write an Excel report
  cat parts.txt | toolfinder batch --queries - --output ./report.xlsx

  # Use a local export instead of the published sheet
  toolfinder batch --queries ./parts.txt --input ./tools.csv --output ./report.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		queries, err := readQueriesFrom(batchQueries, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return fmt.Errorf("no part numbers found in %s", batchQueries)
		}

		client, err := newSheetClient(*cfg)
		if err != nil {
			return err
		}
		payload, err := source.Load(cmd.Context(), batchInput, batchFormat, client)
		if err != nil {
			return err
		}

		rows, err := runBatch(cmd.Context(), payload, queries, batchWorkers)
		if err != nil {
			return err
		}

		store, err := openHistory(*cfg, batchNoHistory)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
			recordBatch(cmd.Context(), store, source.Describe(batchInput), rows)
		}

		if strings.TrimSpace(batchOutput) == "" {
			return output.WriteBatchCSV(cmd.OutOrStdout(), rows)
		}

		format := batchOutputFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(batchOutput)
		}
		if err := output.WriteBatch(batchOutput, format, rows); err != nil {
			return err
		}

		found := 0
		for _, row := range rows {
			if row.Err == nil && row.Result.Found {
				found++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Batch completed. Queries: %d, Found: %d, Not found or failed: %d, File: %s\n",
			len(rows),
			found,
			len(rows)-found,
			batchOutput,
		)
		return nil
	},
}

// runBatch searches payload for every query with at most workers goroutines.
// Per-query errors are kept on the row; only a cancelled context aborts.
func runBatch(ctx context.Context, payload string, queries []string, workers int) ([]output.BatchRow, error) {
	if workers <= 0 {
		workers = 1
	}

	rows := make([]output.BatchRow, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, query := range queries {
		i, query := i, query
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := lookup.Search(payload, query)
			rows[i] = output.BatchRow{Query: query, Result: result, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("batch lookup aborted: %w", err)
	}
	return rows, nil
}

func recordBatch(ctx context.Context, store *storage.SQLiteStore, sourceLabel string, rows []output.BatchRow) {
	for _, row := range rows {
		recordLookup(ctx, store, row.Query, sourceLabel, row.Result, row.Err)
	}
	logger.Debug("batch recorded", zap.Int("lookups", len(rows)))
}

// readQueriesFrom reads one part number per line from path, or from stdin for "-".
func readQueriesFrom(path string, stdin io.Reader) ([]string, error) {
	if strings.TrimSpace(path) == "-" {
		return readQueries(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file %s: %w", path, err)
	}
	defer file.Close()
	return readQueries(file)
}

func readQueries(r io.Reader) ([]string, error) {
	queries := make([]string, 0, 64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return queries, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchQueries, "queries", "q", "", "File with one part number per line (- for stdin)")
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Local CSV/Excel file to search instead of the published sheet")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "Input format: csv|excel|sheet (optional, inferred from --input)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file (default: CSV on stdout)")
	batchCmd.Flags().StringVar(&batchOutputFormat, "output-format", "", "Output format: csv|excel (optional, inferred from --output)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 4, "Number of parallel lookups")
	batchCmd.Flags().BoolVar(&batchNoHistory, "no-history", false, "Do not record these lookups in the history database")

	_ = batchCmd.MarkFlagRequired("queries")
}
