// internal/config/config.go
//
// This package handles configuration and the .windscout directory
// structure. Every project that uses windscout gets a .windscout/ folder
// created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project.
	ProjectDirName = ".windscout"

	defaultTimeoutSeconds = 30
	defaultServerHost     = "127.0.0.1"
	defaultServerPort     = 8710

	// EnvServerHost and EnvServerPort override the results server address.
	EnvServerHost = "WINDSCOUT_SERVER_HOST"
	EnvServerPort = "WINDSCOUT_SERVER_PORT"
)

const defaultProjectConfigYAML = `# windscout project configuration
version: 1

# Exactly two candidate sites are assessed and compared per run.
sites:
  - name: Altamont Ridge
  - name: Paloma Flats

# Environmental report text fed to the environmental assessor.
report: "The environmental impact is minimal..."

imagery:
  prompt: >-
    Analyze this satellite image for its suitability for an onshore wind
    farm. Consider factors like terrain, vegetation, existing
    infrastructure, and potential environmental impact.
  high_keywords: [suitable, terrain]
  moderate_keywords: [some, moderate]

# Per-call deadline for external collaborators, in seconds.
collaborator_timeout_seconds: 30

# Deterministic dataset to answer collaborator calls from. Leave empty
# for the built-in reference dataset; otherwise name a definition from
# .windscout/scenarios/.
scenario: ""

server:
  enabled: false
  host: 127.0.0.1
  port: 8710
`

// SiteRef declares one candidate site entry inside .windscout/config.yaml.
type SiteRef struct {
	Name string `yaml:"name"`
}

// ImageryConfig tunes the imagery stage prompt and keyword precedence.
type ImageryConfig struct {
	Prompt           string   `yaml:"prompt"`
	HighKeywords     []string `yaml:"high_keywords,omitempty"`
	ModerateKeywords []string `yaml:"moderate_keywords,omitempty"`
}

// ServerConfig captures results server preferences.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// Address renders the host:port pair the server binds to.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ProjectConfig models .windscout/config.yaml.
type ProjectConfig struct {
	Version        int           `yaml:"version"`
	Sites          []SiteRef     `yaml:"sites"`
	Report         string        `yaml:"report"`
	Imagery        ImageryConfig `yaml:"imagery"`
	TimeoutSeconds int           `yaml:"collaborator_timeout_seconds"`
	Scenario       string        `yaml:"scenario,omitempty"`
	Server         ServerConfig  `yaml:"server"`
}

// Config holds the runtime configuration for windscout.
type Config struct {
	// ProjectDir is the directory where the user ran `windscout` from.
	ProjectDir string

	// ScoutProjectDir is ProjectDir/.windscout.
	ScoutProjectDir string

	Project ProjectConfig
}

// InitProjectDir creates the .windscout directory structure in the given
// project directory. Called on startup by every entry point.
//
// Structure created:
// .windscout/
// ├── logs/       <- Diagnostics and the run journal
// ├── state/      <- Persisted state between runs
// ├── runs/       <- Serialized assessment runs (latest.json)
// └── scenarios/  <- Scenario definitions (yaml or yaegi .go)
func InitProjectDir(projectDir string) error {
	scoutDir := filepath.Join(projectDir, ProjectDirName)
	dirs := []string{
		filepath.Join(scoutDir, "logs"),
		filepath.Join(scoutDir, "state"),
		filepath.Join(scoutDir, "runs"),
		filepath.Join(scoutDir, "scenarios"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(scoutDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		ScoutProjectDir: filepath.Join(projectDir, ProjectDirName),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ScoutProjectDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.ScoutProjectDir, "state")
}

// RunsDir returns the directory holding serialized runs.
func (c *Config) RunsDir() string {
	return filepath.Join(c.ScoutProjectDir, "runs")
}

// ScenariosDir returns the directory holding scenario definitions.
func (c *Config) ScenariosDir() string {
	return filepath.Join(c.ScoutProjectDir, "scenarios")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ScoutProjectDir, "config.yaml")
}

// SiteNames returns the configured candidate site names in order.
func (c *Config) SiteNames() []string {
	names := make([]string, 0, len(c.Project.Sites))
	for _, ref := range c.Project.Sites {
		names = append(names, ref.Name)
	}
	return names
}

// Timeout returns the per-call collaborator deadline.
func (c *Config) Timeout() time.Duration {
	seconds := c.Project.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// SetSites replaces the candidate pair and persists the value back to
// .windscout/config.yaml.
func (c *Config) SetSites(first, second string) error {
	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)
	if first == "" || second == "" {
		return fmt.Errorf("config: two site names are required")
	}
	c.Project.Sites = []SiteRef{{Name: first}, {Name: second}}
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if host := strings.TrimSpace(os.Getenv(EnvServerHost)); host != "" {
		c.Project.Server.Host = host
	}
	if raw := strings.TrimSpace(os.Getenv(EnvServerPort)); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			c.Project.Server.Port = port
		}
	}
}

func defaultProjectConfig() ProjectConfig {
	cfg := ProjectConfig{}
	cfg.applyDefaults()
	return cfg
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if len(pc.Sites) == 0 {
		pc.Sites = []SiteRef{{Name: "Altamont Ridge"}, {Name: "Paloma Flats"}}
	}
	if strings.TrimSpace(pc.Report) == "" {
		pc.Report = "The environmental impact is minimal..."
	}
	if strings.TrimSpace(pc.Imagery.Prompt) == "" {
		pc.Imagery.Prompt = "Analyze this satellite image for its suitability for an onshore wind farm. " +
			"Consider factors like terrain, vegetation, existing infrastructure, and potential environmental impact."
	}
	if len(pc.Imagery.HighKeywords) == 0 {
		pc.Imagery.HighKeywords = []string{"suitable", "terrain"}
	}
	if len(pc.Imagery.ModerateKeywords) == 0 {
		pc.Imagery.ModerateKeywords = []string{"some", "moderate"}
	}
	if pc.TimeoutSeconds <= 0 {
		pc.TimeoutSeconds = defaultTimeoutSeconds
	}
	if strings.TrimSpace(pc.Server.Host) == "" {
		pc.Server.Host = defaultServerHost
	}
	if pc.Server.Port <= 0 {
		pc.Server.Port = defaultServerPort
	}
}

func (pc *ProjectConfig) normalize() {
	for i := range pc.Sites {
		pc.Sites[i].Name = strings.TrimSpace(pc.Sites[i].Name)
	}
	pc.Scenario = strings.TrimSpace(pc.Scenario)
	pc.Imagery.HighKeywords = normalizeKeywords(pc.Imagery.HighKeywords)
	pc.Imagery.ModerateKeywords = normalizeKeywords(pc.Imagery.ModerateKeywords)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if len(pc.Sites) != 2 {
		return fmt.Errorf("exactly two sites are required, got %d", len(pc.Sites))
	}
	for i, ref := range pc.Sites {
		if ref.Name == "" {
			return fmt.Errorf("sites[%d]: name is required", i)
		}
	}
	if strings.EqualFold(pc.Sites[0].Name, pc.Sites[1].Name) {
		return fmt.Errorf("candidate sites must be distinct")
	}
	if pc.TimeoutSeconds <= 0 {
		return fmt.Errorf("collaborator_timeout_seconds must be positive")
	}
	if pc.Server.Port <= 0 || pc.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", pc.Server.Port)
	}
	return nil
}

func normalizeKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.ToLower(strings.TrimSpace(value))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.ScoutProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure project dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
