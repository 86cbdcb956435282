// Echoprobe discovers ECHONET Lite devices on the local network.
//
// It broadcasts the standard "get instance list" request on UDP port
// 3610 and reports every node that replies within the collection
// window. Typical users are smart-home integrators checking which
// ECHONET Lite devices (air conditioners, floor heating, lighting,
// smart meters) are reachable on a subnet.
//
// Usage:
//
//	echoprobe [command] [flags]
//
// Running without arguments performs a scan with the defaults.
// See 'echoprobe --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/echoprobe/internal/logging"
	"github.com/muurk/echoprobe/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "echoprobe",
	Short: "ECHONET Lite Device Discovery",
	Long: `A utility for discovering ECHONET Lite devices on the local network.

Broadcasts the standard "get instance list" request and reports every
node that replies within the collection window.

If no command is specified, a scan runs with the default settings.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: scan when no subcommand provided
		return runScan(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("echoprobe %s (commit: %s)\n", version.Version, version.Commit)
	},
}
