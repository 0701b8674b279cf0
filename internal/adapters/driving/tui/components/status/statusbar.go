// Package status renders the one-line status bar under the search screen.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// LoadingText is shown while the dataset loads or a search is pending.
const LoadingText = "Loading..."

// Bar shows load state, result and dataset counts on the left and key hints
// for the focused pane on the right.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	datasetSize int
	source      string
	focus       messages.Focus
	width       int
}

// NewBar creates a bar. Nil styles or keymap select the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		focus:  messages.FocusInput,
		width:  80,
	}
}

func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the search view drives the bar through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the bar at its full width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Hints give way to the status text on narrow terminals
	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > inner {
		right = ""
	}

	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Warning.Render(LoadingText)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}

	parts := []string{fmt.Sprintf("%d results", s.resultCount)}
	if s.source != "" {
		parts = append(parts, fmt.Sprintf("%d cities from %s", s.datasetSize, s.source))
	}
	left := s.styles.Normal.Render(strings.Join(parts, " · "))
	if s.message != "" {
		left += "  " + s.styles.Muted.Render(s.message)
	}
	return left
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.focus == messages.FocusResults {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.InputHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func (s *Bar) SetState(state State) {
	s.state = state
}

func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the note shown after the counts, or the error text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

func (s *Bar) Message() string {
	return s.message
}

func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetDataset records the size and origin of the loaded dataset.
func (s *Bar) SetDataset(size int, source string) {
	s.datasetSize = size
	s.source = source
}

// SetFocus selects which keybinding hints are shown.
func (s *Bar) SetFocus(focus messages.Focus) {
	s.focus = focus
}

func (s *Bar) SetWidth(width int) {
	s.width = width
}

func (s *Bar) Width() int {
	return s.width
}
