package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// newTable creates a borderless, left-aligned table.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}

// renderCities prints one row per city, with a distance column when the
// rows carry one.
func renderCities(w io.Writer, rows []cityRow, withDistance bool) error {
	header := []string{"#", "City", "Country", "Lat", "Lng"}
	if withDistance {
		header = append(header, "Distance")
	}

	cells := make([][]string, 0, len(rows))
	for i, row := range rows {
		line := []string{
			strconv.Itoa(i + 1),
			row.Name,
			row.Country,
			strconv.FormatFloat(row.Lat, 'f', 4, 64),
			strconv.FormatFloat(row.Lng, 'f', 4, 64),
		}
		if withDistance && row.DistanceKm != nil {
			line = append(line, fmt.Sprintf("%.0f km", *row.DistanceKm))
		}
		cells = append(cells, line)
	}

	table := newTable(w)
	table.Header(header)
	if err := table.Bulk(cells); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	return nil
}

func heading(text string) string {
	return color.New(color.Bold).Sprint(text)
}

func muted(text string) string {
	return color.New(color.Faint).Sprint(text)
}
