package scenario

import (
	"fmt"
	"strings"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/config"
)

// Collaborators selects the configured scenario and builds a fixture
// collaborator set from it. An empty scenario name selects the built-in
// reference dataset.
func Collaborators(cfg *config.Config) (collab.Set, error) {
	if cfg == nil {
		return collab.Set{}, fmt.Errorf("scenario: config is required")
	}
	def, err := Select(cfg)
	if err != nil {
		return collab.Set{}, err
	}
	return collab.Fixture(def.FixtureData()), nil
}

// Select returns the definition named by the project config, or the
// built-in reference dataset when no name is set.
func Select(cfg *config.Config) (Definition, error) {
	want := strings.TrimSpace(cfg.Project.Scenario)
	if want == "" {
		return Default(), nil
	}
	defs, err := LoadDir(cfg.ScenariosDir())
	if err != nil {
		return Definition{}, err
	}
	for _, def := range defs {
		if strings.EqualFold(def.Definition.Name, want) {
			return def.Definition, nil
		}
	}
	available := names(defs)
	if len(available) == 0 {
		return Definition{}, fmt.Errorf("scenario: %q not found, no definitions in %s", want, cfg.ScenariosDir())
	}
	return Definition{}, fmt.Errorf("scenario: %q not found, available: %s", want, strings.Join(available, ", "))
}
