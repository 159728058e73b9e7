package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/scenario"
)

const validYAML = `
name: desert-pair
findings:
  - Minimal habitat disruption
sites:
  - name: Alpha Ridge
    coordinates:
      latitude: 40.1
      longitude: -105.2
    images: [gs://scout/alpha.png]
    analysis:
      gs://scout/alpha.png: Flat terrain, suitable for turbines.
    posts:
      - sentiment: positive
        text: Great for the region
    land:
      ownership: public
      acquisition_difficulty: low
    hub:
      distance: 3
      estimated_cost: 30000
  - name: Beta Flats
    coordinates:
      latitude: 36.5
      longitude: -118.9
`

func TestParseDefinitionYAML(t *testing.T) {
	def, err := scenario.ParseDefinitionYAML([]byte(validYAML))
	if err != nil {
		t.Fatalf("ParseDefinitionYAML: %v", err)
	}
	if def.Name != "desert-pair" {
		t.Fatalf("unexpected name %q", def.Name)
	}
	if len(def.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(def.Sites))
	}
	// Sparse entries are normalized with land defaults.
	beta := def.Sites[1]
	if beta.Land.Ownership != collab.OwnershipUnknown {
		t.Fatalf("expected ownership default, got %q", beta.Land.Ownership)
	}
	if beta.Land.AcquisitionDifficulty != collab.DifficultyModerate {
		t.Fatalf("expected difficulty default, got %q", beta.Land.AcquisitionDifficulty)
	}
}

func TestParseDefinitionYAMLRejectsDuplicates(t *testing.T) {
	payload := `
name: dup
sites:
  - name: Alpha Ridge
  - name: alpha ridge
`
	if _, err := scenario.ParseDefinitionYAML([]byte(payload)); err == nil {
		t.Fatalf("expected duplicate site error")
	}
}

func TestParseDefinitionYAMLRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"empty payload": "   ",
		"missing name":  "sites:\n  - name: A\n",
		"no sites":      "name: empty\n",
		"bad coordinates": `
name: bad
sites:
  - name: A
    coordinates: {latitude: 120, longitude: 0}
`,
		"bad ownership": `
name: bad
sites:
  - name: A
    land: {ownership: corporate}
`,
	}
	for name, payload := range cases {
		if _, err := scenario.ParseDefinitionYAML([]byte(payload)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadDirReadsYAMLDefinitions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "desert.yaml"), []byte(validYAML), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	defs, err := scenario.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(defs) != 1 || defs[0].Definition.Name != "desert-pair" {
		t.Fatalf("unexpected definitions %+v", defs)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	defs, err := scenario.LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir must not error: %v", err)
	}
	if defs != nil {
		t.Fatalf("expected no definitions, got %+v", defs)
	}
}

func TestLoadDirEvaluatesGoDefinitions(t *testing.T) {
	source := `package scenariodef

func ScenarioDefinitions() []map[string]any {
	return []map[string]any{
		{
			"name": "scripted",
			"sites": []map[string]any{
				{
					"name": "Alpha Ridge",
					"coordinates": map[string]any{
						"latitude":  40.1,
						"longitude": -105.2,
					},
				},
			},
		},
	}
}
`
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scripted.go"), []byte(source), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	defs, err := scenario.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	def := defs[0].Definition
	if def.Name != "scripted" {
		t.Fatalf("unexpected name %q", def.Name)
	}
	if len(def.Sites) != 1 || def.Sites[0].Coordinates == nil {
		t.Fatalf("coordinates lost in translation: %+v", def.Sites)
	}
}

func TestSelectDefaultsToReferenceDataset(t *testing.T) {
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	def, err := scenario.Select(cfg)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if def.Name != "reference" {
		t.Fatalf("expected reference dataset, got %q", def.Name)
	}
	if len(def.Sites) != 1 || def.Sites[0].Name != collab.DefaultKey {
		t.Fatalf("reference dataset must carry a default entry: %+v", def.Sites)
	}
}

func TestSelectNamedScenario(t *testing.T) {
	dir := t.TempDir()
	if err := config.InitProjectDir(dir); err != nil {
		t.Fatalf("InitProjectDir: %v", err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	path := filepath.Join(cfg.ScenariosDir(), "desert.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	cfg.Project.Scenario = "Desert-Pair"
	def, err := scenario.Select(cfg)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if def.Name != "desert-pair" {
		t.Fatalf("expected desert-pair, got %q", def.Name)
	}

	cfg.Project.Scenario = "unknown"
	_, err = scenario.Select(cfg)
	if err == nil || !strings.Contains(err.Error(), "desert-pair") {
		t.Fatalf("error should list available scenarios: %v", err)
	}
}

func TestDefaultDatasetAnswersAnySite(t *testing.T) {
	set := collab.Fixture(scenario.Default().FixtureData())
	coords, err := set.Geocoder.Resolve(context.Background(), "Any Place At All")
	if err != nil {
		t.Fatalf("Resolve via default entry: %v", err)
	}
	if coords.Latitude != 34.0522 || coords.Longitude != -118.2437 {
		t.Fatalf("unexpected reference coordinates %v", coords)
	}
	refs, err := set.ImageSource.ListImages(context.Background(), coords.Latitude, coords.Longitude)
	if err != nil || len(refs) != 1 {
		t.Fatalf("expected one reference image, got %v %v", refs, err)
	}
	text, err := set.ImageClassifier.Classify(context.Background(), refs[0], "prompt")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !strings.Contains(strings.ToLower(text), "suitable") {
		t.Fatalf("reference analysis should classify high: %q", text)
	}
}
