// Package land checks land ownership and acquisition difficulty for the
// resolved coordinates.
package land

import (
	"fmt"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "land"
	stageVersion = "1.0.0"
)

// Stage assesses land ownership.
type Stage struct {
	info stage.Info
}

// Register installs the land stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs a land stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Land Assessor",
			Description: "Checks land ownership and acquisition difficulty.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run looks up the land record for the resolved coordinates.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	if ctx.Assessment.Coordinates == nil {
		return stage.Result{Status: stage.StatusSkipped, Message: "coordinates unavailable"}, nil
	}
	coords := *ctx.Assessment.Coordinates
	record, err := ctx.Collaborators.LandRegistry.Lookup(ctx.Ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: lookup: %w", stageID, err)
	}
	if !record.Ownership.Valid() {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: registry returned invalid ownership %q", stageID, record.Ownership)
	}
	if !record.AcquisitionDifficulty.Valid() {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: registry returned invalid difficulty %q", stageID, record.AcquisitionDifficulty)
	}
	ctx.Assessment.Land = &assessment.LandSection{
		Ownership:             record.Ownership,
		AcquisitionDifficulty: record.AcquisitionDifficulty,
	}
	message := fmt.Sprintf("%s ownership, %s acquisition difficulty", record.Ownership, record.AcquisitionDifficulty)
	return stage.Result{Status: stage.StatusCompleted, Message: message}, nil
}
