// Package assessment accumulates structured findings for one candidate
// site. Each stage contributes exactly one section; the comparison step
// only accepts assessments where every required section is present.
package assessment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/site"
)

// Viability is the ordered imagery classification level.
type Viability string

const (
	ViabilityHigh     Viability = "high"
	ViabilityModerate Viability = "moderate"
	ViabilityLow      Viability = "low"
)

// Rank orders viability levels so comparisons can prefer the stronger site.
func (v Viability) Rank() int {
	switch v {
	case ViabilityHigh:
		return 3
	case ViabilityModerate:
		return 2
	case ViabilityLow:
		return 1
	}
	return 0
}

// ImageAnalysis records the outcome for a single image reference.
// Failed entries carry the inline error text instead of analysis.
type ImageAnalysis struct {
	Ref    string `json:"ref"`
	Text   string `json:"text"`
	Failed bool   `json:"failed,omitempty"`
}

// ImagerySection is the imagery stage contribution.
type ImagerySection struct {
	Viability Viability       `json:"viability"`
	Analysis  string          `json:"analysis"`
	Images    []ImageAnalysis `json:"images,omitempty"`
}

// SentimentSection is the sentiment stage contribution. Raw posts are
// preserved in source order; Tally counts posts per sentiment label.
type SentimentSection struct {
	Posts         []collab.Post  `json:"posts"`
	Tally         map[string]int `json:"tally"`
	LawsuitsFound bool           `json:"lawsuits_found"`
}

// Balance returns positive minus negative post counts.
func (s *SentimentSection) Balance() int {
	if s == nil {
		return 0
	}
	return s.Tally["positive"] - s.Tally["negative"]
}

// Labels returns the tallied sentiment labels in sorted order.
func (s *SentimentSection) Labels() []string {
	if s == nil || len(s.Tally) == 0 {
		return nil
	}
	labels := make([]string, 0, len(s.Tally))
	for label := range s.Tally {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// LandSection is the land stage contribution.
type LandSection struct {
	Ownership             collab.Ownership  `json:"ownership"`
	AcquisitionDifficulty collab.Difficulty `json:"acquisition_difficulty"`
}

// EnvironmentSection is the environmental stage contribution.
type EnvironmentSection struct {
	KeyFindings []string `json:"key_findings"`
}

// GridSection is the grid stage contribution.
type GridSection struct {
	Distance      float64 `json:"distance"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// StageFailure attaches a stage error to the assessment instead of
// dropping it; downstream stages keep running.
type StageFailure struct {
	StageID string `json:"stage_id"`
	Err     string `json:"error"`
}

// Assessment is the accumulated structured findings for one site. It is
// built incrementally, one section per stage, and never mutated
// concurrently.
type Assessment struct {
	Site        string              `json:"site"`
	Coordinates *site.Coordinates   `json:"coordinates,omitempty"`
	Imagery     *ImagerySection     `json:"imagery,omitempty"`
	Sentiment   *SentimentSection   `json:"sentiment,omitempty"`
	Land        *LandSection        `json:"land,omitempty"`
	Environment *EnvironmentSection `json:"environment,omitempty"`
	Grid        *GridSection        `json:"grid,omitempty"`
	Failures    []StageFailure      `json:"failures,omitempty"`
}

// New starts an empty assessment for the named site.
func New(siteName string) *Assessment {
	return &Assessment{Site: strings.TrimSpace(siteName)}
}

// RecordFailure attaches a stage error to the assessment.
func (a *Assessment) RecordFailure(stageID string, err error) {
	if a == nil || err == nil {
		return
	}
	a.Failures = append(a.Failures, StageFailure{StageID: stageID, Err: err.Error()})
}

// Failed reports whether any stage recorded a failure.
func (a *Assessment) Failed() bool {
	return a != nil && len(a.Failures) > 0
}

// MissingDimensions lists required sections that no stage has filled yet.
func (a *Assessment) MissingDimensions() []string {
	if a == nil {
		return []string{"assessment"}
	}
	var missing []string
	if a.Coordinates == nil {
		missing = append(missing, "coordinates")
	}
	if a.Imagery == nil {
		missing = append(missing, "imagery")
	}
	if a.Sentiment == nil {
		missing = append(missing, "sentiment")
	}
	if a.Land == nil {
		missing = append(missing, "land")
	}
	if a.Environment == nil {
		missing = append(missing, "environment")
	}
	if a.Grid == nil {
		missing = append(missing, "grid")
	}
	return missing
}

// Complete reports whether every stage has contributed its section.
// Partial assessments must never reach the comparison step.
func (a *Assessment) Complete() bool {
	return len(a.MissingDimensions()) == 0
}

// Validate checks section values after a full run.
func (a *Assessment) Validate() error {
	if a == nil {
		return fmt.Errorf("assessment: nil assessment")
	}
	if strings.TrimSpace(a.Site) == "" {
		return fmt.Errorf("assessment: site name is required")
	}
	if a.Land != nil {
		if !a.Land.Ownership.Valid() {
			return fmt.Errorf("assessment: %s: invalid ownership %q", a.Site, a.Land.Ownership)
		}
		if !a.Land.AcquisitionDifficulty.Valid() {
			return fmt.Errorf("assessment: %s: invalid acquisition difficulty %q", a.Site, a.Land.AcquisitionDifficulty)
		}
	}
	if a.Imagery != nil && a.Imagery.Viability.Rank() == 0 {
		return fmt.Errorf("assessment: %s: invalid viability %q", a.Site, a.Imagery.Viability)
	}
	return nil
}
