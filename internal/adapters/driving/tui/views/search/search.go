// Package search provides the city search view for the TUI.
package search

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/geo"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// nearbyHeight is the number of lines reserved for the nearby panel.
const nearbyHeight = domain.MaxNearest + 3

// View is the search screen: query input, results list, nearby panel and
// status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	results   *list.CityList
	nearby    *list.CityList
	statusbar *status.Bar

	search    driving.SearchService
	dataset   driving.DatasetService
	debouncer driving.SearchDebouncer
	ctx       context.Context

	state          domain.SearchState
	selected       domain.City
	focus          messages.Focus
	datasetLoading bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	search driving.SearchService,
	dataset driving.DatasetService,
	debouncer driving.SearchDebouncer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		results:   list.NewCityList(s, "Results", "No cities match"),
		nearby:    list.NewCityList(s, "Nearby", "No other cities"),
		statusbar: status.NewBar(s, km),
		search:    search,
		dataset:   dataset,
		debouncer: debouncer,
		ctx:       context.Background(),
		width:     80,
		height:    24,
		focus:     messages.FocusInput,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and the initial dataset load.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.startLoad())
}

// startLoad marks the dataset as loading and returns the load command.
func (v *View) startLoad() tea.Cmd {
	if v.dataset == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoDatasetService} }
	}

	v.datasetLoading = true
	v.statusbar.SetState(status.StateLoading)

	ctx, dataset := v.ctx, v.dataset
	return func() tea.Msg {
		snap, err := dataset.Load(ctx)
		return messages.DatasetLoaded{Snapshot: snap, Err: err}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DatasetLoaded:
		v.handleDatasetLoaded(msg)
		return v, nil

	case messages.ReloadRequested:
		if v.datasetLoading {
			return v, nil
		}
		return v, v.startLoad()

	case messages.DebounceFired:
		v.handleDebounceFired(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Reload):
		return v.Update(messages.ReloadRequested{})

	case keymap.Matches(key, v.keymap.Focus):
		v.toggleFocus()
		return v, nil

	case keymap.Matches(key, v.keymap.Select):
		return v, v.selectCursor()

	case keymap.Matches(key, v.keymap.Clear):
		if v.state.HasSelection() {
			v.clearSelection()
		} else if v.focus == messages.FocusResults {
			v.toggleFocus()
		}
		return v, nil
	}

	// Arrows navigate from either pane; j/k only while the results have focus.
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.results.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.results.MoveDown()
		return v, nil
	}

	if v.focus == messages.FocusResults {
		if keymap.Matches(key, v.keymap.Up) || keymap.Matches(key, v.keymap.Down) {
			v.results, _ = v.results.Update(msg)
			return v, nil
		}
		if msg.Type != tea.KeyRunes {
			return v, nil
		}
		// Typing from the results pane goes back to the input
		v.toggleFocus()
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if !changed {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.queryChanged(v.input.Value()))
}

// queryChanged records the new query, drops the selection and schedules a
// debounced search.
func (v *View) queryChanged(query string) tea.Cmd {
	v.state.Query = query
	v.clearSelection()

	if v.debouncer == nil {
		v.refresh()
		return nil
	}

	ticket := v.debouncer.Schedule(query)
	v.updateStatus()
	return tea.Tick(v.debouncer.Delay(), func(time.Time) tea.Msg {
		return messages.DebounceFired{Ticket: ticket}
	})
}

// handleDebounceFired runs the search if the ticket is still current.
func (v *View) handleDebounceFired(msg messages.DebounceFired) {
	if v.debouncer == nil {
		return
	}

	outcome, ok := v.debouncer.Fire(v.ctx, msg.Ticket)
	if !ok {
		return
	}
	if outcome.Err != nil {
		v.setError(outcome.Err)
		return
	}

	v.err = nil
	v.setResults(outcome.Results)
	v.updateStatus()
}

// handleDatasetLoaded installs the outcome of a load and re-runs the current
// query against the snapshot now in place.
func (v *View) handleDatasetLoaded(msg messages.DatasetLoaded) {
	v.datasetLoading = false

	if msg.Err != nil {
		logger.Error("dataset load failed: %v", msg.Err)
		if msg.Snapshot == nil || msg.Snapshot.IsEmpty() {
			v.setError(msg.Err)
		} else {
			v.statusbar.SetMessage("reload failed, kept previous dataset")
		}
	} else {
		v.err = nil
		v.statusbar.SetMessage("")
	}

	if msg.Snapshot != nil {
		v.statusbar.SetDataset(msg.Snapshot.Len(), msg.Snapshot.Source())
	}

	v.refresh()

	// The selection survives only if the new snapshot still has it
	if v.state.HasSelection() {
		if city, ok := msg.Snapshot.ByID(v.state.SelectedID); ok {
			v.selectCity(city)
		} else {
			v.clearSelection()
		}
	}
	v.updateStatus()
}

// refresh runs the current query immediately.
func (v *View) refresh() {
	if v.search == nil {
		v.setError(ErrNoSearchService)
		return
	}

	results, err := v.search.Search(v.ctx, v.state.Query)
	if err != nil {
		v.setError(err)
		return
	}
	v.setResults(results)
}

func (v *View) setResults(results []domain.City) {
	v.state.Results = results
	v.results.SetCities(results)
	v.results.ResetCursor()
}

// selectCursor selects the city under the results cursor.
func (v *View) selectCursor() tea.Cmd {
	city, ok := v.results.CursorCity()
	if !ok {
		return nil
	}
	if !v.selectCity(city) {
		return nil
	}
	return func() tea.Msg { return messages.CitySelected{City: city} }
}

// selectCity makes city the selection and computes its neighbours.
func (v *View) selectCity(city domain.City) bool {
	if v.search == nil {
		v.setError(ErrNoSearchService)
		return false
	}

	nearest, err := v.search.Nearest(v.ctx, city.ID)
	if err != nil {
		v.setError(fmt.Errorf("nearest to %s: %w", city.Name, err))
		return false
	}

	v.err = nil
	v.selected = city
	v.state.SelectedID = city.ID
	v.state.Nearest = nearest
	v.results.SetHighlight(city.ID)
	v.nearby.SetOrigin(&city)
	v.nearby.SetCities(nearest)
	v.layout()
	v.updateStatus()
	return true
}

func (v *View) clearSelection() {
	v.selected = domain.City{}
	v.state.SelectedID = ""
	v.state.Nearest = nil
	v.results.SetHighlight("")
	v.nearby.SetOrigin(nil)
	v.nearby.SetCities(nil)
	v.layout()
}

func (v *View) toggleFocus() {
	if v.focus == messages.FocusInput {
		v.focus = messages.FocusResults
		v.input.Blur()
	} else {
		v.focus = messages.FocusInput
		v.input.Focus()
	}
	v.statusbar.SetFocus(v.focus)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// updateStatus derives the status bar state from the view state.
func (v *View) updateStatus() {
	v.statusbar.SetResultCount(len(v.state.Results))
	switch {
	case v.Loading():
		v.statusbar.SetState(status.StateLoading)
	case v.err != nil:
		v.statusbar.SetState(status.StateError)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("City Finder"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.results.View())

	if v.state.HasSelection() {
		sections = append(sections, "", v.renderNearbyHeader(), v.nearby.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNearbyHeader names the selected city and its geohash cell.
func (v *View) renderNearbyHeader() string {
	header := v.styles.Title.Render(v.selected.Label())
	if cell := geo.Geohash(v.selected.Lat, v.selected.Lng); cell != "" {
		header += " " + v.styles.Muted.Render(fmt.Sprintf("(%.4f, %.4f · %s)", v.selected.Lat, v.selected.Lng, cell))
	}
	return header
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.layout()
}

// layout splits the height between the results and the nearby panel.
func (v *View) layout() {
	// Title, input box, spacing and status bar
	available := v.height - 9
	if v.state.HasSelection() {
		available -= nearbyHeight + 2
		v.nearby.SetDimensions(v.width, nearbyHeight)
	}
	if available < 3 {
		available = 3
	}
	v.results.SetDimensions(v.width, available)
}

// Close stops pending debounced searches.
func (v *View) Close() {
	if v.debouncer != nil {
		v.debouncer.Stop()
	}
}

// State returns a copy of the current search state.
func (v *View) State() domain.SearchState {
	state := v.state
	state.Loading = v.Loading()
	return state
}

// Loading reports whether the dataset is loading or a search is pending.
func (v *View) Loading() bool {
	if v.datasetLoading {
		return true
	}
	return v.debouncer != nil && v.debouncer.Loading()
}

// Query returns the current query.
func (v *View) Query() string {
	return v.input.Value()
}

// Focus returns the focused pane.
func (v *View) Focus() messages.Focus {
	return v.focus
}

// Cursor returns the results cursor index.
func (v *View) Cursor() int {
	return v.results.Cursor()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
