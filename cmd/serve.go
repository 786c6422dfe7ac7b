package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolfinder/config"
	"toolfinder/source"
	"toolfinder/web"
)

var (
	servePort      int
	serveInput     string
	serveFormat    string
	serveNoOpen    bool
	serveNoHistory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local part lookup web UI",
	Long: `Start a local HTTP server with a search page and a JSON API.

Every search fetches the sheet again, so edits to the published sheet show up
on the next lookup. Endpoints:
- GET /             search page (?q=<part-number>)
- GET /api/search   JSON lookup (?q=<part-number>)
- GET /healthz      liveness check`,
	Example: `
  # Start on the configured port and open the browser
  toolfinder serve

  # Serve lookups from a local export on a custom port
  toolfinder serve --port 9090 --input ./tools.xlsx --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		client, err := newSheetClient(*cfg)
		if err != nil {
			return err
		}
		format, err := source.InferFormat(serveInput, serveFormat)
		if err != nil {
			return err
		}
		reader, err := source.ReaderForFormat(format, client)
		if err != nil {
			return err
		}

		store, err := openHistory(*cfg, serveNoHistory)
		if err != nil {
			return err
		}
		opts := web.Options{Reader: reader, Location: serveInput, Logger: logger}
		if store != nil {
			defer store.Close()
			opts.Recorder = store
		}

		handler, err := web.NewServer(opts)
		if err != nil {
			return err
		}

		port := servePort
		if !cmd.Flags().Changed("port") {
			port = cfg.Server.Port
		}
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		fmt.Printf("Listening on %s\n", listenURL)
		logger.Info("server started", zap.Int("port", port), zap.String("source", source.Describe(serveInput)))
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server (overrides server.port)")
	serveCmd.Flags().StringVarP(&serveInput, "input", "i", "", "Serve lookups from a local CSV/Excel file instead of the published sheet")
	serveCmd.Flags().StringVarP(&serveFormat, "format", "f", "", "Input format: csv|excel|sheet (optional, inferred from --input)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false, "Do not record lookups in the history database")
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
