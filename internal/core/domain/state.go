package domain

// MaxNearest is the number of neighbours shown for a selected city.
const MaxNearest = 4

// SearchState is what the presentation layer renders.
// Results and Nearest are derived from Query, SelectedID and the snapshot.
type SearchState struct {
	// Query is the text typed by the user.
	Query string

	// Results is the ordered result list for Query.
	Results []City

	// SelectedID identifies the chosen city, empty when nothing is selected.
	SelectedID string

	// Nearest holds up to MaxNearest cities closest to the selection.
	// It never contains the selected city and is empty without a selection.
	Nearest []City

	// Loading is true while the dataset loads or a debounced search is pending.
	Loading bool
}

// HasSelection reports whether a city is selected.
func (s SearchState) HasSelection() bool {
	return s.SelectedID != ""
}

// SearchTicket identifies one scheduled search. A later ticket always
// supersedes an earlier one; zero never fires.
type SearchTicket uint64

// SearchOutcome is the result of a debounced search that actually ran.
type SearchOutcome struct {
	Ticket  SearchTicket
	Query   string
	Results []City
	Err     error
}
