package list

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

func testCities() []domain.City {
	return []domain.City{
		{ID: "1", Name: "Lisbon", Country: "Portugal", Lat: 38.7223, Lng: -9.1393},
		{ID: "2", Name: "Madrid", Country: "Spain", Lat: 40.4168, Lng: -3.7038},
		{ID: "3", Name: "Paris", Country: "France", Lat: 48.8566, Lng: 2.3522},
	}
}

func TestNewCityList(t *testing.T) {
	l := NewCityList(nil, "Results", "No cities")

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Init())

	view := l.View()
	assert.Contains(t, view, "Results (0)")
	assert.Contains(t, view, "No cities")
}

func TestCityList_Navigation(t *testing.T) {
	l := NewCityList(nil, "Results", "")
	l.SetCities(testCities())

	l.MoveUp()
	assert.Equal(t, 0, l.Cursor())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Cursor())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	city, ok := l.CursorCity()
	require.True(t, ok)
	assert.Equal(t, "Madrid", city.Name)

	l.ResetCursor()
	assert.Equal(t, 0, l.Cursor())
}

func TestCityList_SetCitiesClampsCursor(t *testing.T) {
	l := NewCityList(nil, "Results", "")
	l.SetCities(testCities())
	l.MoveDown()
	l.MoveDown()

	l.SetCities(testCities()[:1])
	assert.Equal(t, 0, l.Cursor())

	l.SetCities(nil)
	assert.Equal(t, 0, l.Cursor())
	_, ok := l.CursorCity()
	assert.False(t, ok)
}

func TestCityList_ViewShowsLabelsAndCursor(t *testing.T) {
	l := NewCityList(nil, "Results", "")
	l.SetCities(testCities())
	l.SetHighlight("2")

	view := l.View()
	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "> Lisbon, Portugal")
	assert.Contains(t, view, "Madrid, Spain")
	assert.Equal(t, "2", l.Highlight())
	assert.NotContains(t, view, " km")

	l.SetShowCursor(false)
	assert.NotContains(t, l.View(), "> ")
}

func TestCityList_DistanceColumn(t *testing.T) {
	l := NewCityList(nil, "Nearby", "")
	origin := testCities()[0]
	l.SetOrigin(&origin)
	l.SetCities(testCities()[1:])

	view := l.View()
	// Lisbon to Madrid is roughly 502 km
	assert.Contains(t, view, "502 km")
	assert.Contains(t, view, "km")

	l.SetOrigin(nil)
	assert.NotContains(t, l.View(), "km")
}

func TestCityList_Scrolls(t *testing.T) {
	cities := make([]domain.City, 20)
	for i := range cities {
		cities[i] = domain.City{ID: fmt.Sprint(i), Name: fmt.Sprintf("Town %02d", i)}
	}

	l := NewCityList(nil, "Results", "")
	l.SetDimensions(60, 7) // five rows
	l.SetCities(cities)

	view := l.View()
	assert.Contains(t, view, "Town 04")
	assert.NotContains(t, view, "Town 05")
	assert.Contains(t, view, "15 more")

	for i := 0; i < 10; i++ {
		l.MoveDown()
	}
	view = l.View()
	assert.Contains(t, view, "> Town 10")
	assert.NotContains(t, view, "Town 05")
	assert.Contains(t, view, "Town 06")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Oslo", truncate("Oslo", 10))
	assert.Equal(t, "Reykj…", truncate("Reykjavík", 6))
	assert.Equal(t, "B", truncate("Bogotá", 1))
	assert.Equal(t, 6, len([]rune(truncate(strings.Repeat("á", 9), 6))))
}
