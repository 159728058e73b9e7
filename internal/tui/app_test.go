package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/kingrea/windscout/internal/pipeline"
)

func TestNewAppBuildsMainMenu(t *testing.T) {
	app, err := NewApp(t.TempDir())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	items := app.mainMenu.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 menu items, got %d", len(items))
	}
	first, ok := items[0].(menuItem)
	if !ok || first.title != "Run Assessment" {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if !strings.Contains(first.desc, "Altamont Ridge") {
		t.Fatalf("run description should name the configured sites: %q", first.desc)
	}
	if app.state != stateMainMenu {
		t.Fatalf("app must start on the main menu")
	}
}

func TestHandleRunFinishedError(t *testing.T) {
	app, err := NewApp(t.TempDir())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.state = stateRunning
	model, _ := app.Update(runFinishedMsg{err: errors.New("scenario missing")})
	updated := model.(*App)
	if updated.state != stateMainMenu {
		t.Fatalf("failed run should return to the menu, got state %d", updated.state)
	}
	if updated.err == nil {
		t.Fatalf("error must be surfaced on the menu")
	}
	if !strings.Contains(updated.View(), "scenario missing") {
		t.Fatalf("view should display the error")
	}
}

func TestHandleRunFinishedShowsResults(t *testing.T) {
	app, err := NewApp(t.TempDir())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.state = stateRunning
	model, _ := app.Update(runFinishedMsg{run: pipeline.Run{RunID: "run-0001"}})
	updated := model.(*App)
	if updated.state != stateResults {
		t.Fatalf("finished run should show results, got state %d", updated.state)
	}
	if !strings.Contains(updated.View(), "run-0001") {
		t.Fatalf("results view should name the run:\n%s", updated.View())
	}
}
