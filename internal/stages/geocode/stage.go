// Package geocode resolves a candidate site name to coordinates. Every
// coordinate-driven stage downstream depends on its output.
package geocode

import (
	"fmt"

	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "geocode"
	stageVersion = "1.0.0"
)

// Stage resolves the site location through the geocoding collaborator.
type Stage struct {
	info stage.Info
}

// Register installs the geocode stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs a geocode stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Geocoder",
			Description: "Resolves the site name to latitude/longitude coordinates.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run resolves coordinates and stores them on the assessment.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	coords, err := ctx.Collaborators.Geocoder.Resolve(ctx.Ctx, ctx.Site.Name)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: resolve %q: %w", stageID, ctx.Site.Name, err)
	}
	if err := coords.Validate(); err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: %w", stageID, err)
	}
	ctx.Assessment.Coordinates = &coords
	return stage.Result{
		Status:  stage.StatusCompleted,
		Message: fmt.Sprintf("%s resolved to %s", ctx.Site.Name, coords),
	}, nil
}
