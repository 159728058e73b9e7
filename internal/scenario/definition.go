// Package scenario loads deterministic collaborator datasets. A scenario
// definition describes, per site, the answers every collaborator returns;
// the built-in reference dataset mirrors the original sample data.
// Definitions come from YAML files or yaegi-interpreted .go files in
// .windscout/scenarios/.
package scenario

import (
	"fmt"
	"strings"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/site"
)

// SiteEntry holds the dataset for one site. The entry named
// collab.DefaultKey answers for any site without its own entry.
type SiteEntry struct {
	Name        string             `yaml:"name"`
	Coordinates *site.Coordinates  `yaml:"coordinates,omitempty"`
	Images      []string           `yaml:"images,omitempty"`
	Analysis    map[string]string  `yaml:"analysis,omitempty"`
	Posts       []collab.Post      `yaml:"posts,omitempty"`
	Lawsuits    bool               `yaml:"lawsuits"`
	Land        collab.LandRecord  `yaml:"land"`
	Hub         collab.HubEstimate `yaml:"hub"`
}

// Definition is one named scenario dataset.
type Definition struct {
	Name     string      `yaml:"name"`
	Findings []string    `yaml:"findings,omitempty"`
	Sites    []SiteEntry `yaml:"sites"`
}

// Validate ensures the definition is well-formed.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("scenario: name is required")
	}
	if len(d.Sites) == 0 {
		return fmt.Errorf("scenario: %s declares no sites", d.Name)
	}
	seen := map[string]struct{}{}
	for i, entry := range d.Sites {
		key := site.Key(entry.Name)
		if key == "" {
			return fmt.Errorf("scenario: %s sites[%d]: name is required", d.Name, i)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("scenario: %s declares site %q twice", d.Name, entry.Name)
		}
		seen[key] = struct{}{}
		if entry.Coordinates != nil {
			if err := entry.Coordinates.Validate(); err != nil {
				return fmt.Errorf("scenario: %s site %q: %w", d.Name, entry.Name, err)
			}
		}
		if entry.Land.Ownership != "" && !entry.Land.Ownership.Valid() {
			return fmt.Errorf("scenario: %s site %q: invalid ownership %q", d.Name, entry.Name, entry.Land.Ownership)
		}
		if entry.Land.AcquisitionDifficulty != "" && !entry.Land.AcquisitionDifficulty.Valid() {
			return fmt.Errorf("scenario: %s site %q: invalid acquisition difficulty %q", d.Name, entry.Name, entry.Land.AcquisitionDifficulty)
		}
	}
	return nil
}

// Normalized trims names and fills land defaults for sparse entries.
func (d Definition) Normalized() Definition {
	clone := d
	clone.Name = strings.TrimSpace(d.Name)
	clone.Sites = make([]SiteEntry, len(d.Sites))
	for i, entry := range d.Sites {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Land.Ownership == "" {
			entry.Land.Ownership = collab.OwnershipUnknown
		}
		if entry.Land.AcquisitionDifficulty == "" {
			entry.Land.AcquisitionDifficulty = collab.DifficultyModerate
		}
		clone.Sites[i] = entry
	}
	return clone
}

// FixtureData converts the definition into fixture seed data.
func (d Definition) FixtureData() collab.FixtureData {
	data := collab.FixtureData{
		Sites:    make(map[string]collab.SiteData, len(d.Sites)),
		Findings: append([]string(nil), d.Findings...),
	}
	for _, entry := range d.Sites {
		data.Sites[site.Key(entry.Name)] = collab.SiteData{
			Coordinates: entry.Coordinates,
			Images:      append([]string(nil), entry.Images...),
			Analyses:    entry.Analysis,
			Posts:       append([]collab.Post(nil), entry.Posts...),
			Lawsuits:    entry.Lawsuits,
			Land:        entry.Land,
			Hub:         entry.Hub,
		}
	}
	return data
}
