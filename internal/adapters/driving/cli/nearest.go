package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

var nearestJSON bool

var nearestCmd = &cobra.Command{
	Use:   "nearest [name]",
	Short: "Show the nearest neighbours of a city",
	Long: `Selects the first city whose name contains the given text and lists
the cities closest to it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNearest,
}

func init() {
	nearestCmd.Flags().BoolVar(&nearestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(nearestCmd)
}

func runNearest(cmd *cobra.Command, args []string) error {
	if _, err := loadDataset(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	name := strings.Join(args, " ")

	origin, ok := svc.Search.Anchor(ctx, name)
	if !ok {
		return fmt.Errorf("no city matches %q: %w", name, domain.ErrNotFound)
	}

	neighbours, err := svc.Search.Nearest(ctx, origin.ID)
	if err != nil {
		return fmt.Errorf("nearest failed: %w", err)
	}

	out := rankedOutput{
		Query:   name,
		Anchor:  &origin,
		Total:   len(neighbours),
		Results: newCityRows(&origin, neighbours),
	}
	if nearestJSON {
		return printJSON(cmd, out)
	}

	cmd.Println(heading("Nearest to " + origin.Label()))
	if len(neighbours) == 0 {
		cmd.Println(muted("  (no other cities)"))
		return nil
	}
	return renderCities(cmd.OutOrStdout(), out.Results, true)
}
