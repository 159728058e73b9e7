// Package imagery retrieves the image set covering a site and classifies
// overall viability from the per-image analysis texts.
package imagery

import (
	"fmt"
	"strings"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "imagery"
	stageVersion = "1.0.0"
)

// Stage assesses site viability from satellite imagery.
type Stage struct {
	info stage.Info
}

// Register installs the imagery stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs an imagery stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Imagery Assessor",
			Description: "Retrieves satellite images and classifies wind farm viability.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run lists images, classifies each, and derives the viability level.
// A per-image classification failure is recorded inline and never aborts
// the batch; the output always carries one entry per image reference.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	if ctx.Assessment.Coordinates == nil {
		return stage.Result{Status: stage.StatusSkipped, Message: "coordinates unavailable"}, nil
	}
	coords := *ctx.Assessment.Coordinates
	refs, err := ctx.Collaborators.ImageSource.ListImages(ctx.Ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: list images: %w", stageID, err)
	}

	prompt := ctx.Config.Project.Imagery.Prompt
	entries := make([]assessment.ImageAnalysis, 0, len(refs))
	texts := make([]string, 0, len(refs))
	failed := 0
	for _, ref := range refs {
		text, err := ctx.Collaborators.ImageClassifier.Classify(ctx.Ctx, ref, prompt)
		if err != nil {
			failed++
			inline := fmt.Sprintf("Error analyzing image %s: %v", ref, err)
			entries = append(entries, assessment.ImageAnalysis{Ref: ref, Text: inline, Failed: true})
			texts = append(texts, inline)
			continue
		}
		entries = append(entries, assessment.ImageAnalysis{Ref: ref, Text: text})
		texts = append(texts, text)
	}

	analysis := strings.Join(texts, "\n")
	viability := Classify(analysis, ctx.Config.Project.Imagery.HighKeywords, ctx.Config.Project.Imagery.ModerateKeywords)
	ctx.Assessment.Imagery = &assessment.ImagerySection{
		Viability: viability,
		Analysis:  analysis,
		Images:    entries,
	}

	message := fmt.Sprintf("viability %s from %d images", viability, len(refs))
	if failed > 0 {
		message = fmt.Sprintf("%s (%d failed classification)", message, failed)
	}
	return stage.Result{Status: stage.StatusCompleted, Message: message}, nil
}

// Classify maps the merged analysis text to a viability level using
// first-match keyword precedence: high keywords win over moderate ones
// regardless of co-occurrence, and text matching neither list is low.
// An empty text is always low.
func Classify(text string, high, moderate []string) assessment.Viability {
	lower := strings.ToLower(text)
	if containsAny(lower, high) {
		return assessment.ViabilityHigh
	}
	if containsAny(lower, moderate) {
		return assessment.ViabilityModerate
	}
	return assessment.ViabilityLow
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
