package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time.
var (
	// Version is the semantic version (e.g., "0.1.0").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, build date, and Go runtime version.`,
	Run: func(cmd *cobra.Command, _ []string) {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			fmt.Printf("Error getting flag: %v\n", err)
			return
		}
		if short {
			fmt.Println(Version)
			return
		}
		fmt.Println(versionInfo())
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func versionInfo() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("recache %s\n", Version))
	sb.WriteString(fmt.Sprintf("  commit:  %s\n", Commit))
	sb.WriteString(fmt.Sprintf("  built:   %s\n", Date))
	sb.WriteString(fmt.Sprintf("  go:      %s\n", runtime.Version()))
	sb.WriteString(fmt.Sprintf("  os/arch: %s/%s", runtime.GOOS, runtime.GOARCH))

	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && Commit == "none" && len(setting.Value) >= 7 {
					sb.WriteString(fmt.Sprintf("\n  vcs.rev: %s", setting.Value[:7]))
				}
			}
		}
	}

	return sb.String()
}
