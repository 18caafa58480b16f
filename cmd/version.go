package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// versionString formats the version, normalizing it when it is semantic
func versionString() string {
	if parsed, err := semver.ParseTolerant(version); err == nil {
		return fmt.Sprintf("v%s (built %s)", parsed, buildTime)
	}
	return fmt.Sprintf("%s (built %s)", version, buildTime)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// The version does not need a config file or API key.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "trendcarousel "+versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
