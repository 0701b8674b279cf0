package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/watch"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/services"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

var tuiWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive city finder",
	Long: `Launch the interactive terminal interface.

Type a city name to rank every other city by distance from the first match.
Select a result to see its four nearest neighbours.

Controls:
  Tab      - Switch between input and results
  ↑/k, ↓/j - Navigate results
  Enter    - Select city
  Esc      - Clear selection / Back to input
  Ctrl+R   - Reload dataset
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "reload when the dataset file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := requireServices(); err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(svc.Search, svc.Dataset, svc.Debouncer))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Background reloaders share the program's lifetime.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	app.WithContext(gctx)
	p := app.NewProgram()

	// Log lines would draw over the alternate screen.
	if closeLog == nil {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	if path := settings.Dataset.WatchPath(); path != "" && (tuiWatch || settings.Dataset.Watch) {
		w, err := watch.New(path, func() { p.Send(messages.ReloadRequested{}) })
		if err != nil {
			return err
		}
		defer w.Close()
		g.Go(func() error {
			w.Run(gctx)
			return nil
		})
	}

	// Remote sources have nothing to watch; poll them instead.
	if settings.Dataset.Refresh > 0 {
		r := services.NewRefresher(svc.Dataset, settings.Dataset.Refresh, func(s *domain.Snapshot, err error) {
			p.Send(messages.DatasetLoaded{Snapshot: s, Err: err})
		})
		g.Go(func() error {
			if err := r.Start(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	_, err = p.Run()
	cancel()
	if waitErr := g.Wait(); waitErr != nil {
		logger.Error("dataset reloader stopped: %v", waitErr)
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
