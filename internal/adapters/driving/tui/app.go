package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cityfinder/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// App is the bubbletea model. It owns the single search screen and handles
// quitting and window sizing.
type App struct {
	ports      *Ports
	ctx        context.Context
	searchView *search.View

	err    error // last ErrorOccurred
	width  int
	height int
	ready  bool // set by the first WindowSizeMsg
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		searchView: search.NewView(styles.DefaultStyles(), nil, ports.Search, ports.Dataset, ports.Debouncer),
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init sets the window title and starts the initial dataset load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cityfinder"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}

	case messages.Quit:
		return a, a.quit()

	case messages.CitySelected:
		logger.Debug("selected %s (%s)", msg.City.Label(), msg.City.ID)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// quit stops pending searches before exiting.
func (a *App) quit() tea.Cmd {
	a.searchView.Close()
	return tea.Quit
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// NewProgram wraps the app in a program on the alternate screen. The dataset
// watcher and refresher deliver their messages through the program's Send.
func (a *App) NewProgram(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

func (a *App) State() domain.SearchState {
	return a.searchView.State()
}

func (a *App) Err() error {
	return a.err
}

func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
