// Package grid locates the nearest electrical hub for the resolved
// coordinates and estimates the connection cost.
package grid

import (
	"fmt"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "grid"
	stageVersion = "1.0.0"
)

// Stage assesses grid connectivity.
type Stage struct {
	info stage.Info
}

// Register installs the grid stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs a grid stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Grid Assessor",
			Description: "Finds the nearest electrical hub and estimates connection cost.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run looks up the nearest hub for the resolved coordinates.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	if ctx.Assessment.Coordinates == nil {
		return stage.Result{Status: stage.StatusSkipped, Message: "coordinates unavailable"}, nil
	}
	coords := *ctx.Assessment.Coordinates
	hub, err := ctx.Collaborators.GridInfrastructure.NearestHub(ctx.Ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: nearest hub: %w", stageID, err)
	}
	if hub.Distance < 0 || hub.EstimatedCost < 0 {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: negative estimate from grid lookup", stageID)
	}
	ctx.Assessment.Grid = &assessment.GridSection{
		Distance:      hub.Distance,
		EstimatedCost: hub.EstimatedCost,
	}
	message := fmt.Sprintf("hub at %.1f, estimated cost %.0f", hub.Distance, hub.EstimatedCost)
	return stage.Result{Status: stage.StatusCompleted, Message: message}, nil
}
