package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/jsonfile"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/services"
)

var importCmd = &cobra.Command{
	Use:   "import [json-file]",
	Short: "Import a JSON dataset into SQLite",
	Long: `Reads a JSON array of cities and replaces the cities table of the
database named by --db (or dataset.db in the config file).

Without a file the bundled dataset is imported. Records with unusable
coordinates are skipped; identifiers are assigned exactly as a load would.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	target := datasetDB
	if target == "" {
		target = settings.Dataset.DB
	}
	if target == "" {
		return fmt.Errorf("import needs --db or dataset.db: %w", domain.ErrInvalidInput)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	src := jsonfile.New(path)

	ctx := cmd.Context()
	raws, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src.Describe(), err)
	}

	snap, dropped, err := services.BuildSnapshot(raws, src.Describe(), time.Now())
	if err != nil {
		return fmt.Errorf("building dataset: %w", err)
	}

	store, err := sqlite.NewStore(target)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceCities(ctx, snap.Cities()); err != nil {
		return err
	}

	cmd.Printf("Imported %d cities from %s into %s\n", snap.Len(), src.Describe(), store.Path())
	if dropped > 0 {
		cmd.Printf("Skipped %d records with unusable coordinates\n", dropped)
	}
	return nil
}
