package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bookshelf/internal/config"
	"github.com/vovakirdan/tui-bookshelf/internal/core"
	"github.com/vovakirdan/tui-bookshelf/internal/platform/tui"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive shelf",
	Long: `Open the shelf in the terminal.

Controls:
  Mouse drag  - Move a book; books in the way are pushed aside
  + / -       - More or fewer books per shelf
  a / d       - Add a shelf / remove the last (empty) shelf
  o           - Re-pack the shelf grouped by class
  Tab         - Show the hand; Enter shelves the selected book
  r           - Reload
  ?           - Full help
  q/Ctrl+C    - Quit

Log output goes to shelf.log next to the database unless view.log_file is set.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func runView(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The alt-screen owns the terminal; logs go to a file instead.
	logPath := cfg.View.LogFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(config.ExpandHome(cfg.Storage.Path)), "shelf.log")
	}
	logPath = config.ExpandHome(logPath)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger = newLogger(logFile)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.View.TickRate,
	}

	opts := tui.Options{
		Geometry:       cfg.ShelfGeometry(),
		AnimationTicks: cfg.View.AnimationTicks,
		Logger:         logger,
		Hand:           store,
	}
	var appOpts []shelf.Option
	if n := openNotifier(ctx, logger); n != nil {
		defer n.Close()
		sub, subErr := n.Subscribe(ctx)
		if subErr != nil {
			logger.Warn("cannot subscribe to layout events", "error", subErr)
		} else {
			defer sub.Close()
			opts.Events = sub.Events()
			opts.Source = n.Source()
		}
		appOpts = append(appOpts, shelf.WithNotifier(n))
	}

	app := shelf.NewApp(store, logger, appOpts...)
	logger.Info("shelf view started", "db", cfg.Storage.Path)
	return tui.Run(ctx, app, rc, opts)
}
