// Package cli wires the britecal commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/britecal/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "britecal",
	Short: "Export your Eventbrite tickets as an iCal feed",
	Long: `Britecal is a small stateless backend that completes the Eventbrite
OAuth consent flow and turns your ticketed orders into an iCalendar file.

Access tokens pass through on each request; nothing is stored server-side.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
