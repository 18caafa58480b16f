package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/trendcarousel/config"
	"github.com/s0up4200/trendcarousel/renderer"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	builder *renderer.Builder

	// Command flags
	endpoint   string
	targetID   string
	timeWindow string
	filterExpr string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trendcarousel",
	Short: "Render TMDb trending titles as a Swiper carousel",
	Long: `trendcarousel fetches the trending movies and TV shows from TMDb and
renders them as a Swiper carousel inside an HTML page, either written to a
file or served over HTTP.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	addOverrideFlags(rootCmd)
}

// addOverrideFlags registers the flags that override the loaded config
func addOverrideFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&endpoint, "endpoint", "e", "", "override the endpoint of the first carousel (all, movie, tv, person)")
	flags.StringVarP(&targetID, "target", "t", "", "override the placement id of the first carousel")
	flags.StringVarP(&timeWindow, "window", "w", "", "trending window (day or week)")
	flags.StringVarP(&filterExpr, "filter", "f", "", "filter expression or preset for the first carousel")
}

// initializeApp initializes the configuration, logger and page builder
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if err := applyFlagOverrides(cmd); err != nil {
		return err
	}

	builder, err = renderer.NewBuilder(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create page builder: %w", err)
	}

	return nil
}

// applyFlagOverrides applies command line flags on top of the loaded config
// and validates the result again
func applyFlagOverrides(cmd *cobra.Command) error {
	first := &cfg.Carousels[0]
	if cmd.Flags().Changed("endpoint") {
		first.Endpoint = endpoint
	}
	if cmd.Flags().Changed("target") {
		first.TargetID = targetID
	}
	if cmd.Flags().Changed("filter") {
		first.Filter = filterExpr
	}
	if cmd.Flags().Changed("window") {
		cfg.TMDb.TimeWindow = timeWindow
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid command line overrides: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
