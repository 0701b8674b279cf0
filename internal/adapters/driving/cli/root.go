// Package cli provides the cobra command tree for cityfinder.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Persistent flags.
var (
	configDir   string
	verbose     bool
	datasetPath string
	datasetURL  string
	datasetDB   string
)

var (
	// svc holds the wired services for the running command.
	svc *Services

	// injected is set when tests supply services with SetServices.
	injected bool

	// settings is the resolved configuration including flag overrides.
	settings domain.Settings

	// closeLog restores stderr logging after a log file was opened.
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "cityfinder",
	Short: "Find cities and their nearest neighbours",
	Long: `cityfinder searches a dataset of cities by name and ranks them by
great-circle distance from the first match.

Run without a subcommand in a terminal to start the interactive finder.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config", "", "config directory (default $"+file.EnvConfigDir+" or ~/.cityfinder)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logging")
	flags.StringVar(&datasetPath, "dataset", "", "load cities from a JSON file")
	flags.StringVar(&datasetURL, "url", "", "load cities from a JSON URL")
	flags.StringVar(&datasetDB, "db", "", "load cities from a SQLite database")
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetServices injects pre-built services, skipping config resolution.
// Passing nil restores normal wiring.
func SetServices(s *Services) {
	svc = s
	injected = s != nil
	if s != nil && s.Settings != nil {
		if resolved, err := s.Settings.Get(); err == nil {
			settings = resolved
		}
	}
}

func setup(_ *cobra.Command, _ []string) error {
	if injected {
		logger.SetVerbose(verbose)
		return nil
	}

	dir := configDir
	if dir == "" {
		var err error
		if dir, err = file.DefaultDir(); err != nil {
			return err
		}
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return err
	}

	wired, resolved, err := NewServices(store, overrides)
	if err != nil {
		return err
	}

	logger.SetVerbose(verbose || resolved.Log.Verbose)
	if resolved.Log.File != "" {
		if closeLog, err = logger.OpenFile(resolved.Log.File); err != nil {
			return err
		}
	}

	svc = wired
	settings = resolved
	logger.Debug("Config: %s", store.Path())
	logger.Debug("Dataset: %s", svc.Dataset.Source())
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	return err
}

// overrides applies the dataset flags. The last source flag given on the
// command line is not tracked; --db wins over --url which wins over --dataset.
func overrides(s *domain.Settings) bool {
	changed := false
	if datasetPath != "" {
		s.Dataset.Source = domain.DatasetSourceFile
		s.Dataset.Path = datasetPath
		changed = true
	}
	if datasetURL != "" {
		s.Dataset.Source = domain.DatasetSourceHTTP
		s.Dataset.URL = datasetURL
		changed = true
	}
	if datasetDB != "" {
		s.Dataset.Source = domain.DatasetSourceSQLite
		s.Dataset.DB = datasetDB
		changed = true
	}
	return changed
}

// requireServices guards commands against running before setup.
func requireServices() error {
	if svc == nil || svc.Dataset == nil || svc.Search == nil {
		return fmt.Errorf("services not configured: %w", domain.ErrInvalidInput)
	}
	return nil
}
