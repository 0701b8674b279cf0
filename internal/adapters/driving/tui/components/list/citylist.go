// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/geo"
)

// CityList displays cities in a scrollable list with an optional cursor,
// a highlighted (selected) row and a distance column.
type CityList struct {
	title     string
	emptyText string
	cities    []domain.City
	cursor    int

	// highlightID marks the selected city.
	highlightID string

	// origin, when set, adds a km column measured from it.
	origin *geo.Point

	showCursor bool
	styles     *styles.Styles
	width      int
	height     int
}

// NewCityList creates a list titled title.
func NewCityList(s *styles.Styles, title, emptyText string) *CityList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CityList{
		title:      title,
		emptyText:  emptyText,
		showCursor: true,
		styles:     s,
		width:      80,
		height:     10,
	}
}

// Init initialises the list.
func (l *CityList) Init() tea.Cmd {
	return nil
}

// Update handles cursor navigation keys.
func (l *CityList) Update(msg tea.Msg) (*CityList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *CityList) View() string {
	header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.cities)))
	if len(l.cities) == 0 {
		return header + "\n" + l.styles.Muted.Render(l.emptyText)
	}

	start, end := l.visibleRange()
	lines := make([]string, 0, end-start+1)
	lines = append(lines, header)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	if end < len(l.cities) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  … %d more", len(l.cities)-end)))
	}
	return strings.Join(lines, "\n")
}

// visibleRange keeps the cursor inside a window of height-2 rows.
func (l *CityList) visibleRange() (int, int) {
	rows := l.height - 2
	if rows < 1 {
		rows = 1
	}

	start := 0
	if l.cursor >= rows {
		start = l.cursor - rows + 1
	}
	end := start + rows
	if end > len(l.cities) {
		end = len(l.cities)
	}
	return start, end
}

func (l *CityList) renderRow(index int) string {
	city := l.cities[index]
	atCursor := l.showCursor && index == l.cursor

	indicator := "  "
	if atCursor {
		indicator = "> "
	}

	var dist string
	if l.origin != nil {
		dist = fmt.Sprintf("%8.0f km", l.origin.DistanceTo(geo.Point{Lat: city.Lat, Lng: city.Lng}))
	}

	labelWidth := l.width - len(indicator) - len(dist) - 2
	if labelWidth < 10 {
		labelWidth = 10
	}
	label := fmt.Sprintf("%-*s", labelWidth, truncate(city.Label(), labelWidth))

	switch {
	case city.ID != "" && city.ID == l.highlightID:
		return l.styles.Highlight.Render(indicator+label) + l.styles.Distance.Render(dist)
	case atCursor:
		return l.styles.Cursor.Render(indicator+label) + l.styles.Distance.Render(dist)
	default:
		return l.styles.Normal.Render(indicator+label) + l.styles.Distance.Render(dist)
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// SetCities replaces the list contents. The cursor is clamped.
func (l *CityList) SetCities(cities []domain.City) {
	l.cities = cities
	if l.cursor >= len(cities) {
		l.cursor = len(cities) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// ResetCursor moves the cursor to the first row.
func (l *CityList) ResetCursor() {
	l.cursor = 0
}

// Cities returns the current contents.
func (l *CityList) Cities() []domain.City {
	return l.cities
}

// SetHighlight marks the city with id as selected. Empty clears it.
func (l *CityList) SetHighlight(id string) {
	l.highlightID = id
}

// Highlight returns the highlighted city ID.
func (l *CityList) Highlight() string {
	return l.highlightID
}

// SetOrigin enables the distance column, measured from origin.
// Nil hides the column.
func (l *CityList) SetOrigin(origin *domain.City) {
	if origin == nil {
		l.origin = nil
		return
	}
	l.origin = &geo.Point{Lat: origin.Lat, Lng: origin.Lng}
}

// SetShowCursor toggles the cursor indicator.
func (l *CityList) SetShowCursor(show bool) {
	l.showCursor = show
}

// Cursor returns the cursor index.
func (l *CityList) Cursor() int {
	return l.cursor
}

// CursorCity returns the city under the cursor.
func (l *CityList) CursorCity() (domain.City, bool) {
	if l.cursor < 0 || l.cursor >= len(l.cities) {
		return domain.City{}, false
	}
	return l.cities[l.cursor], true
}

// MoveUp moves the cursor up.
func (l *CityList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *CityList) MoveDown() {
	if l.cursor < len(l.cities)-1 {
		l.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (l *CityList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of cities.
func (l *CityList) Count() int {
	return len(l.cities)
}

// IsEmpty returns whether the list is empty.
func (l *CityList) IsEmpty() bool {
	return len(l.cities) == 0
}
