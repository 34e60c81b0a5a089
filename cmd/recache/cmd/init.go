package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/WaylonWalker/recache/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively write a recache config file",
	Long: `Init asks a few questions about your project and writes a fresh
recache.toml. It never edits an existing config; rerun with --force to
overwrite one.

Example usage:
  recache init            # Interactive setup
  recache init --force    # Overwrite an existing recache.toml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(_ *cobra.Command, _ []string) error {
	const path = "recache.toml"
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists; rerun with --force to overwrite", path)
	}

	cfg := config.DefaultConfig()

	var (
		entries     = strings.Join(cfg.Entries, ", ")
		searchRoots = strings.Join(cfg.SearchRoots, ", ")
		gitignore   = cfg.GitignoreEnabled()
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("recache init").
				Description("Set up the entry points and output cache for this project."),
			huh.NewInput().
				Title("Entry points").
				Description("Comma-separated logical paths that keep their original filename").
				Value(&entries),
			huh.NewInput().
				Title("Search roots").
				Description("Comma-separated doublestar glob patterns to discover files").
				Value(&searchRoots),
			huh.NewInput().
				Title("Output directory").
				Value(&cfg.OutputDir),
			huh.NewConfirm().
				Title("Honor .gitignore during discovery?").
				Value(&gitignore),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg.Entries = splitTrim(entries)
	cfg.SearchRoots = splitTrim(searchRoots)
	b := gitignore
	cfg.UseGitignore = &b

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		for _, e := range errs {
			warn("%v", e)
		}
	}

	data, err := config.Write(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func splitTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
