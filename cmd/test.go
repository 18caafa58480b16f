package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/trendcarousel/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to TMDb",
	Long:  `Check that the configured token is accepted and list how many items each carousel would receive.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to TMDb at %s...\n", cfg.TMDb.BaseURL)

	ctx := context.Background()
	client := builder.Client()
	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	fmt.Fprintf(out, "\nCarousels (%s window):\n", cfg.TMDb.TimeWindow)
	for _, c := range cfg.Carousels {
		category, err := tmdb.ParseMediaType(c.Endpoint)
		if err != nil {
			return err
		}
		items, err := client.Trending(ctx, category, tmdb.TimeWindow(cfg.TMDb.TimeWindow))
		if err != nil {
			return fmt.Errorf("failed to get trending %s: %w", c.Endpoint, err)
		}
		fmt.Fprintf(out, "  • #%s: %d trending %s item(s)\n", c.TargetID, len(items), c.Endpoint)
	}

	return nil
}
