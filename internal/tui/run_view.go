package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/windscout/internal/pipeline"
	"github.com/kingrea/windscout/internal/report"
)

// runFinishedMsg is delivered when the assessment pipeline finishes.
type runFinishedMsg struct {
	run pipeline.Run
	err error
}

// startRun returns a command that executes the full pipeline off the UI
// loop. The finished run is persisted before the message is delivered so
// "View Last Run" and the results server see it immediately.
func (a *App) startRun() tea.Cmd {
	cfg := a.config
	lb := a.logbook
	collabFactory := a.collabFactory
	registryFactory := a.registryFactory
	return func() tea.Msg {
		set, err := collabFactory(cfg)
		if err != nil {
			return runFinishedMsg{err: err}
		}
		registry, err := registryFactory(cfg)
		if err != nil {
			return runFinishedMsg{err: err}
		}
		runner, err := pipeline.New(registry)
		if err != nil {
			return runFinishedMsg{err: err}
		}
		run, err := runner.Run(context.Background(), pipeline.Request{
			Config:        cfg,
			Collaborators: set,
			Logbook:       lb,
			Sites:         cfg.SiteNames(),
		})
		if err != nil {
			return runFinishedMsg{err: err}
		}
		if err := pipeline.SaveLatest(cfg, run); err != nil {
			return runFinishedMsg{run: run, err: err}
		}
		return runFinishedMsg{run: run}
	}
}

func (a *App) handleRunFinished(msg runFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.state = stateMainMenu
		a.err = msg.err
		a.statusMsg = ""
		if a.logbook != nil {
			a.logbook.Error("assessment failed: %v", msg.err)
		}
		return a, nil
	}
	a.logInfo("Assessment %s finished", msg.run.RunID)
	a.setRun(msg.run)
	return a, nil
}

// setRun switches to the results screen for the given run.
func (a *App) setRun(run pipeline.Run) {
	a.run = &run
	a.runReport = report.RenderRun(run)
	a.state = stateResults
	a.err = nil
	a.statusMsg = ""
}
