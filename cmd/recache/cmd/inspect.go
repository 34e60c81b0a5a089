package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/WaylonWalker/recache/pkg/config"
	"github.com/WaylonWalker/recache/pkg/discover"
	"github.com/WaylonWalker/recache/pkg/hashengine"
)

var inspectNotFound bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Fuzzy-browse the file registry or the last run's not-found report",
	Long: `Inspect walks the configured search roots the same way build does,
then opens a fuzzy finder over the resulting file list so you can check
what recache sees before running a full build. With --not-found, it
browses the unresolved references from the last build's report instead.

Example usage:
  recache inspect
  recache inspect --not-found`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectNotFound, "not-found", false, "browse the last build's not-found report instead of the file registry")
}

func runInspect(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if inspectNotFound {
		return inspectNotFoundReport(cfg.NotFoundFile)
	}
	return inspectFiles(cfg)
}

func inspectFiles(cfg *config.Config) error {
	files, err := discover.Walk(discover.Options{
		Root:         ".",
		Patterns:     cfg.SearchRoots,
		UseGitignore: cfg.GitignoreEnabled(),
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].LogicalPath < files[j].LogicalPath })

	if len(files) == 0 {
		fmt.Println("no files discovered under the configured search roots")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string { return files[i].LogicalPath },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			f := files[i]
			asset := hashengine.NewAsset(f.AbsPath, f.LogicalPath, f.Size)
			kind := "opaque (copied as-is)"
			if asset.IsTextual {
				kind = "textual (scanned and rewritten)"
			}

			preview := fmt.Sprintf("%s\n\n%d bytes\n%s\n%s", f.LogicalPath, f.Size, f.AbsPath, kind)
			if hash := lookupBuiltHash(cfg.OutputDir, f.LogicalPath); hash != "" {
				preview += fmt.Sprintf("\nmerkle hash: %s", hash)
			} else {
				preview += "\nmerkle hash: not built yet"
			}
			return preview
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil
		}
		return fmt.Errorf("fuzzyfinder: %w", err)
	}

	fmt.Println(files[idx].LogicalPath)
	return nil
}

// lookupBuiltHash looks for a previously emitted hashed copy of
// logicalPath under outputDir, and returns the hash segment parsed out of
// its filename, or "" if no such file exists (the asset hasn't been
// built, or is an entry point and keeps its original name). The naming
// convention it parses is the same one hashengine.FormatHashedPath
// writes: "<logicalPath>_<hash>__<ext>".
func lookupBuiltHash(outputDir, logicalPath string) string {
	ext := path.Ext(logicalPath)
	pattern := filepath.Join(outputDir, logicalPath+"_*__"+ext)
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}

	name := filepath.Base(matches[0])
	prefix := filepath.Base(logicalPath) + "_"
	suffix := "__" + ext
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
}

// inspectNotFoundReport opens a fuzzy finder over the unresolved
// candidate references recorded in the given not-found report path, the
// same JSON file hashengine.WriteNotFoundReport produces after a build.
func inspectNotFoundReport(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("no not-found report at %s; run a build first\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read not-found report %s: %w", path, err)
	}

	var notFound map[string]bool
	if err := json.Unmarshal(data, &notFound); err != nil {
		return fmt.Errorf("parse not-found report %s: %w", path, err)
	}

	entries := make([]string, 0, len(notFound))
	for candidate := range notFound {
		entries = append(entries, candidate)
	}
	sort.Strings(entries)

	if len(entries) == 0 {
		fmt.Println("not-found report is empty; every reference resolved")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string { return entries[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("unresolved reference:\n\n%s", entries[i])
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil
		}
		return fmt.Errorf("fuzzyfinder: %w", err)
	}

	fmt.Println(entries[idx])
	return nil
}
