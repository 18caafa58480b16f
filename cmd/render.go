package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var outputPath string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the carousel page to a file or stdout",
	Long: `Fetch the trending listings for every configured carousel and write the
resulting HTML page, including styles, engine assets and activation script.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the page to this file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, reports, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	for _, r := range reports {
		event := logger.Info()
		if !r.Result.Fetch.OK() {
			event = logger.Warn().Err(r.Result.Fetch.Err)
		}
		event.
			Str("carousel", r.ID).
			Str("endpoint", r.Endpoint).
			Str("target", r.TargetID).
			Int("fetched", len(r.Result.Fetch.Items)).
			Int("slides", r.Result.Slides).
			Msg("Carousel rendered")
	}

	if outputPath == "" {
		return doc.Render(cmd.OutOrStdout())
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := doc.Render(f); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d carousel(s) to %s\n", len(reports), outputPath)
	return f.Close()
}
