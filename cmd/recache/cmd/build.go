package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/WaylonWalker/recache/pkg/config"
	"github.com/WaylonWalker/recache/pkg/discover"
	"github.com/WaylonWalker/recache/pkg/hashengine"
	"github.com/WaylonWalker/recache/pkg/ignorelist"
	"github.com/WaylonWalker/recache/pkg/listcache"
)

var (
	buildClean bool
	buildRoot  string
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Discover, hash, and emit the content-addressed cache",
	Long: `Build walks the configured search roots for files, descends from the
entry points through every textual reference it finds, and emits each
reachable asset to the output directory under its content-hashed name.

Example usage:
  recache build              # Build using the discovered config
  recache build --clean      # Discard the file-list cache first
  recache build --watch      # Rebuild whenever a source file changes
  recache build -v           # Build with verbose logging`,
	RunE: runBuildCmd,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "discard the file-list cache before building")
	buildCmd.Flags().StringVar(&buildRoot, "root", ".", "directory search patterns are evaluated against")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild automatically when source files change")
}

// runBuildCmd is build's RunE: a single build, optionally followed by a
// watch loop that reruns it on file-system change.
func runBuildCmd(cmd *cobra.Command, args []string) error {
	if err := runBuild(cmd, args); err != nil {
		return err
	}
	if !buildWatch {
		return nil
	}
	return watchLoop(cmd, args)
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Bold(true)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	summaryOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

// loadConfigForCLI loads the config file, applies the persistent
// --output/--verbose flag overrides common to every subcommand that runs
// a build, and reports validation problems as warnings.
func loadConfigForCLI() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose {
		cfg.Verbose = true
	}

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		for _, e := range errs {
			warn("%v", e)
		}
	}
	return cfg, nil
}

// buildResult summarizes one completed build, for both the CLI's printed
// summary and a watch dashboard's history row.
type buildResult struct {
	cfg        *config.Config
	files      []discover.File
	processed  int
	notFound   int
	totalBytes int64
	duration   time.Duration
}

func runBuild(_ *cobra.Command, _ []string) error {
	result, err := execBuild()
	if err != nil {
		return err
	}
	printBuildSummary(result)
	return nil
}

// execBuild runs one full discover -> hash -> emit pass and reports its
// outcome, without printing anything. Callers that need a CLI summary
// use runBuild; the watch dashboard calls this directly so it can render
// the result as a table row instead.
func execBuild() (*buildResult, error) {
	start := time.Now()

	cfg, err := loadConfigForCLI()
	if err != nil {
		return nil, err
	}

	ignoreSet, err := ignorelist.Load(cfg.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("load ignore list: %w", err)
	}

	files, err := discoverFiles(cfg)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	registry := hashengine.NewRegistry()
	var totalBytes int64
	for _, f := range files {
		registry.Add(hashengine.NewAsset(f.AbsPath, f.LogicalPath, f.Size))
		totalBytes += f.Size
	}

	resolver := hashengine.NewResolver(registry, cfg.ResolverPrefixes)
	emitter := hashengine.NewEmitter(cfg.OutputDir)
	orchestrator := hashengine.New(registry, resolver, emitter, cfg.Entries, ignoreSet)
	orchestrator.Verbose = cfg.Verbose
	orchestrator.Loops = cfg.Loops
	if cfg.Clock != "" {
		pinned, err := time.Parse(time.RFC3339, cfg.Clock)
		if err != nil {
			return nil, fmt.Errorf("parse clock %q: %w", cfg.Clock, err)
		}
		orchestrator.Clock = func() time.Time { return pinned }
	}

	if err := orchestrator.Run(); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	if err := hashengine.WriteNotFoundReport(cfg.NotFoundFile, orchestrator.NotFound()); err != nil {
		return nil, fmt.Errorf("write not-found report: %w", err)
	}

	return &buildResult{
		cfg:        cfg,
		files:      files,
		processed:  orchestrator.Processed(),
		notFound:   len(orchestrator.NotFound()),
		totalBytes: totalBytes,
		duration:   time.Since(start),
	}, nil
}

// discoverFiles walks buildRoot for files matching cfg.SearchRoots and
// refreshes the file-list cache (mtime and size per file) from the
// result. The walk runs on every call; the cache is not used to skip it.
func discoverFiles(cfg *config.Config) ([]discover.File, error) {
	patternHash := listcache.PatternHash(cfg.SearchRoots)

	cache, err := listcache.Load(listcache.DefaultCacheDir)
	if err != nil {
		return nil, err
	}
	if buildClean || cache.Stale(patternHash) {
		cache = &listcache.Cache{Files: make(map[string]listcache.FileInfo)}
	}

	files, err := discover.Walk(discover.Options{
		Root:         buildRoot,
		Patterns:     cfg.SearchRoots,
		UseGitignore: cfg.GitignoreEnabled(),
	})
	if err != nil {
		return nil, err
	}

	rel := make([]string, len(files))
	for i, f := range files {
		rel[i] = f.LogicalPath
	}
	current, _, err := listcache.Refresh(buildRoot, rel, cache.Files)
	if err != nil {
		return nil, err
	}
	cache.Update(patternHash, cfg.SearchRoots, current, time.Now())
	if err := cache.Save(); err != nil {
		return nil, fmt.Errorf("save file-list cache: %w", err)
	}

	return files, nil
}

func printBuildSummary(r *buildResult) {
	fmt.Println(summaryOKStyle.Render("Build complete"))
	fmt.Printf("  %s %d\n", summaryLabelStyle.Render("Files discovered:"), len(r.files))
	fmt.Printf("  %s %d\n", summaryLabelStyle.Render("Assets emitted:"), r.processed)
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Source size:"), humanize.Bytes(uint64(r.totalBytes)))
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Output dir:"), filepath.Clean(r.cfg.OutputDir))
	fmt.Printf("  %s %s\n", summaryLabelStyle.Render("Duration:"), r.duration.Round(time.Millisecond))

	if r.notFound > 0 {
		fmt.Println(summaryWarnStyle.Render(fmt.Sprintf("  %d unresolved reference(s), see %s", r.notFound, r.cfg.NotFoundFile)))
	}
}

