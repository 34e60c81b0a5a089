// Package cmd provides the CLI commands for recache.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the config file specified via --config flag.
	cfgFile string

	// outputDir is the output directory specified via --output flag, which
	// overrides the configured one.
	outputDir string

	// verbose enables verbose output.
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "recache",
	Short: "Build a content-addressed cache of web assets",
	Long: `recache discovers the transitive closure of asset references
reachable from a set of entry files, rewrites those references to
content-hashed filenames, and emits the result to a cache directory.

Example usage:
  recache build              # Discover, hash, and emit the cache
  recache init                # Interactively write a recache config
  recache inspect              # Browse the file registry and not_found report
  recache serve                # Serve the cache directory, rebuilding on change
  recache explain              # Print the algorithm recache implements`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main. It only needs to happen
// once for rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: auto-discover)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
