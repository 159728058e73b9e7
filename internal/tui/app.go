// internal/tui/app.go
//
// This is the main TUI for windscout. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/logbook"
	"github.com/kingrea/windscout/internal/pipeline"
	"github.com/kingrea/windscout/internal/scenario"
	"github.com/kingrea/windscout/internal/stage"
	"github.com/kingrea/windscout/internal/stages"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateMainMenu appState = iota // Main menu with "Run Assessment", etc.
	stateRunning                  // Pipeline executing
	stateResults                  // Rendered run results
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// CollaboratorFactory resolves the collaborator set used by a run.
type CollaboratorFactory func(cfg *config.Config) (collab.Set, error)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithCollaboratorFactory overrides how the run view builds collaborators.
func WithCollaboratorFactory(factory CollaboratorFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.collabFactory = factory
		}
	}
}

// WithStageRegistryFactory allows tests to inject custom stage registries.
func WithStageRegistryFactory(factory func(*config.Config) (*stage.Registry, error)) AppOption {
	return func(a *App) {
		if factory != nil {
			a.registryFactory = factory
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	logbook *logbook.Logbook

	collabFactory   CollaboratorFactory
	registryFactory func(*config.Config) (*stage.Registry, error)

	// UI components
	mainMenu  list.Model // The main menu list
	statusMsg string     // Status message to display
	err       error      // Any error to display

	// Window size (we get this from bubbletea)
	width  int
	height int

	// Last finished run, rendered by the results screen
	run       *pipeline.Run
	runReport string
}

// menuItem implements list.Item interface for our menu items.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.LogsDir(), "journey.log")
	lb, err := logbook.New(logPath)
	if err == nil {
		lb.Info("Session opened · candidates: %s", strings.Join(cfg.SiteNames(), " vs "))
	}

	mainMenu := list.New(buildMainMenu(cfg), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ WINDSCOUT"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	app := &App{
		state:           stateMainMenu,
		config:          cfg,
		logbook:         lb,
		collabFactory:   scenario.Collaborators,
		registryFactory: defaultStageRegistryFactory,
		mainMenu:        mainMenu,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

// buildMainMenu creates the main menu items based on project config.
func buildMainMenu(cfg *config.Config) []list.Item {
	names := cfg.SiteNames()
	runDesc := "Assess both candidate sites and compare them"
	if len(names) == 2 {
		runDesc = fmt.Sprintf("Assess %s vs %s", names[0], names[1])
	}
	return []list.Item{
		menuItem{title: "Run Assessment", desc: runDesc},
		menuItem{title: "View Last Run", desc: "Show the most recent assessment and comparison"},
		menuItem{title: "Exit", desc: "Quit windscout"},
	}
}

func defaultStageRegistryFactory(*config.Config) (*stage.Registry, error) {
	reg := stage.NewRegistry()
	stages.RegisterBuiltins(reg)
	return reg, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.mainMenu.SetSize(m.Width, m.Height-2)
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case runFinishedMsg:
		return a.handleRunFinished(m)
	}
	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if a.state == stateMainMenu || a.state == stateResults {
			a.logInfo("Session closed")
			return a, tea.Quit
		}
	case "esc":
		if a.state == stateResults {
			a.state = stateMainMenu
			a.statusMsg = ""
			return a, nil
		}
	case "enter":
		if a.state == stateMainMenu {
			return a.handleMenuSelect()
		}
	}
	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleMenuSelect() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	switch item.title {
	case "Run Assessment":
		a.state = stateRunning
		a.err = nil
		a.statusMsg = "Assessing candidate sites..."
		a.logInfo("Assessment started")
		return a, a.startRun()
	case "View Last Run":
		run, err := pipeline.LoadLatest(a.config)
		if err != nil {
			a.err = err
			a.statusMsg = ""
			return a, nil
		}
		a.setRun(run)
		return a, nil
	case "Exit":
		a.logInfo("Session closed")
		return a, tea.Quit
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.state {
	case stateRunning:
		return statusStyle.Render("\n  " + a.statusMsg + "\n")
	case stateResults:
		footer := statusStyle.Render("\n  esc: menu · q: quit\n")
		return a.runReport + footer
	default:
		view := a.mainMenu.View()
		if a.err != nil {
			view += "\n" + errorStyle.Render(fmt.Sprintf("  %v", a.err))
		} else if a.statusMsg != "" {
			view += "\n" + statusStyle.Render("  "+a.statusMsg)
		}
		return view
	}
}

// Config exposes the loaded project configuration.
func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

var _ tea.Model = (*App)(nil)
