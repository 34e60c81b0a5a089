package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const serverReadHeaderTimeout = 10 * time.Second

var (
	servePort  int
	serveHost  string
	serveWatch bool
	serveTUI   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the output cache directory, rebuilding on source changes",
	Long: `Serve runs an initial build, starts a static file server over the
output directory, and (unless disabled) watches the search roots for
changes, rerunning the build whenever a source file is written, created,
removed, or renamed.

Example usage:
  recache serve                 # Build once, then serve with live rebuilds
  recache serve --watch=false   # Serve without watching for changes
  recache serve --tui           # Show a live rebuild-history dashboard
  recache serve --port 8888`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to serve on")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "host to serve on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild automatically when source files change")
	serveCmd.Flags().BoolVar(&serveTUI, "tui", false, "show a live rebuild-history dashboard instead of plain log lines")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := runBuild(cmd, args); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	cfg, err := loadConfigForCLI()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var program *tea.Program
	onRebuild := printRebuildResult
	if serveTUI {
		dashboard := newWatchDashboard(fmt.Sprintf("%s:%d", serveHost, servePort), cfg.OutputDir)
		program = tea.NewProgram(dashboard)
		onRebuild = func(ev buildEvent) { program.Send(buildEventMsg(ev)) }
	}

	var rebuilding atomic.Bool
	closeWatcher := func() {}
	if serveWatch {
		closeWatcher, err = watchAndRebuild(ctx, cmd, args, &rebuilding, onRebuild)
		if err != nil {
			return fmt.Errorf("setup watcher: %w", err)
		}
	}
	defer closeWatcher()

	addr := fmt.Sprintf("%s:%d", serveHost, servePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(cfg.OutputDir)),
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if !serveTUI {
			fmt.Printf("Serving %s at http://%s\n", cfg.OutputDir, addr)
			fmt.Println("Press Ctrl+C to stop")
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if program != nil {
		go func() {
			if _, err := program.Run(); err != nil {
				errCh <- fmt.Errorf("dashboard: %w", err)
				return
			}
			cancel()
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// watchLoop blocks, rerunning the build whenever a source file changes,
// until interrupted. Used by "build --watch", which has no HTTP server to
// anchor on the way serve does.
func watchLoop(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var rebuilding atomic.Bool
	closeWatcher, err := watchAndRebuild(ctx, cmd, args, &rebuilding, printRebuildResult)
	if err != nil {
		return fmt.Errorf("setup watcher: %w", err)
	}
	defer closeWatcher()

	<-ctx.Done()
	return nil
}

// printRebuildResult is the default onRebuild callback: a plain log line,
// used whenever no dashboard is attached.
func printRebuildResult(ev buildEvent) {
	if ev.err != nil {
		warn("rebuild failed: %v", ev.err)
		return
	}
	fmt.Printf("rebuilt (%d assets, %d unresolved, %s)\n", ev.assets, ev.notFound, ev.duration.Round(time.Millisecond))
}

// watchAndRebuild watches buildRoot and its subdirectories for change
// events, debounces them, and reruns execBuild, reporting every attempt
// through onRebuild.
func watchAndRebuild(ctx context.Context, _ *cobra.Command, _ []string, rebuilding *atomic.Bool, onRebuild func(buildEvent)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}, fmt.Errorf("create file watcher: %w", err)
	}

	if err := watcher.Add(buildRoot); err != nil {
		watcher.Close()
		return func() {}, fmt.Errorf("watch %s: %w", buildRoot, err)
	}
	if err := addWatchedSubdirs(watcher, buildRoot); err != nil {
		watcher.Close()
		return func() {}, err
	}

	go func() {
		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			<-debounce.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				pending = true
				debounce.Reset(200 * time.Millisecond)
			case <-debounce.C:
				if !pending || rebuilding.Load() {
					continue
				}
				pending = false
				rebuilding.Store(true)
				result, err := execBuild()
				ev := buildEvent{at: time.Now()}
				if err != nil {
					ev.err = err
				} else {
					ev.ok = true
					ev.assets = result.processed
					ev.notFound = result.notFound
					ev.duration = result.duration
				}
				onRebuild(ev)
				rebuilding.Store(false)
			}
		}
	}()

	if !serveTUI {
		fmt.Println("Watching for file changes...")
	}
	return func() { watcher.Close() }, nil
}

func addWatchedSubdirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path != root {
			if filepath.Base(path) == ".git" || filepath.Base(path) == ".recache" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
