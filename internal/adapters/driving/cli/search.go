package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/services"
	"github.com/custodia-labs/cityfinder/internal/geo"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank cities by distance from the first match",
	Long: `Finds the first city whose name contains the query and lists every
other city ordered by great-circle distance from it.

Without a query every city is listed in dataset order.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 for all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// cityRow is a city as printed by the search and nearest commands.
type cityRow struct {
	domain.City
	Geohash    string   `json:"geohash"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// rankedOutput is the JSON document written with --json.
type rankedOutput struct {
	Query   string       `json:"query"`
	Anchor  *domain.City `json:"anchor,omitempty"`
	Total   int          `json:"total"`
	Results []cityRow    `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchLimit < 0 {
		return fmt.Errorf("limit %d is negative: %w", searchLimit, domain.ErrInvalidInput)
	}
	snap, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	// Rank and pick the anchor from the same snapshot.
	query := strings.Join(args, " ")
	results := services.RankSearch(snap, query)

	var anchor *domain.City
	if a, ok := services.FindAnchor(snap, query); ok {
		anchor = &a
	}

	total := len(results)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}
	out := rankedOutput{
		Query:   query,
		Anchor:  anchor,
		Total:   total,
		Results: newCityRows(anchor, results),
	}

	if searchJSON {
		return printJSON(cmd, out)
	}
	return printRanked(cmd, out)
}

// loadDataset loads the configured dataset once for a one-shot command.
func loadDataset(cmd *cobra.Command) (*domain.Snapshot, error) {
	if err := requireServices(); err != nil {
		return nil, err
	}
	snap, err := svc.Dataset.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	logger.Debug("Search over %d cities from %s", snap.Len(), snap.Source())
	return snap, nil
}

func newCityRows(origin *domain.City, cities []domain.City) []cityRow {
	rows := make([]cityRow, len(cities))
	for i, c := range cities {
		rows[i] = cityRow{City: c, Geohash: geo.Geohash(c.Lat, c.Lng)}
		if origin != nil {
			d := geo.Distance(origin.Lat, origin.Lng, c.Lat, c.Lng)
			rows[i].DistanceKm = &d
		}
	}
	return rows
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printRanked(cmd *cobra.Command, out rankedOutput) error {
	if len(out.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if out.Anchor != nil {
		cmd.Println(heading(fmt.Sprintf("Closest to %s (%.4f, %.4f)", out.Anchor.Label(), out.Anchor.Lat, out.Anchor.Lng)))
	} else {
		cmd.Println(heading(fmt.Sprintf("All %d cities", out.Total)))
	}
	if err := renderCities(cmd.OutOrStdout(), out.Results, out.Anchor != nil); err != nil {
		return err
	}

	if hidden := out.Total - len(out.Results); hidden > 0 {
		cmd.Println(muted(fmt.Sprintf("… %d more (use --limit 0 to show all)", hidden)))
	}
	return nil
}
