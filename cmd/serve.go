package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/trendcarousel/server"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the carousel page over HTTP",
	Long: `Start an HTTP server that renders a fresh carousel page on every request.

Routes:
  GET /                          rendered page
  GET /api/trending/{category}   trending items as JSON (?window=day|week)
  GET /healthz                   liveness probe`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Address
	if listenAddr != "" {
		addr = listenAddr
	}

	pages := server.PageBuilderFunc(func(ctx context.Context) (server.Page, error) {
		doc, _, err := builder.Build(ctx)
		if err != nil {
			return nil, err
		}
		return doc, nil
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(pages, builder.Client(), logger).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server.ListenAndServe(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}
