// Package environment extracts key findings from the configured
// environmental report. The extraction mechanism itself is a pluggable
// collaborator; this stage only shapes its output.
package environment

import (
	"fmt"
	"strings"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "environment"
	stageVersion = "1.0.0"
)

// Stage summarizes the environmental impact report.
type Stage struct {
	info stage.Info
}

// Register installs the environment stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs an environment stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Environmental Assessor",
			Description: "Extracts key findings from the environmental impact report.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run extracts ordered key findings from the report text.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	report := ctx.Config.Project.Report
	if strings.TrimSpace(report) == "" {
		return stage.Result{Status: stage.StatusSkipped, Message: "no report configured"}, nil
	}
	findings, err := ctx.Collaborators.ReportAnalyzer.ExtractFindings(ctx.Ctx, report)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: extract findings: %w", stageID, err)
	}
	ctx.Assessment.Environment = &assessment.EnvironmentSection{
		KeyFindings: findings,
	}
	return stage.Result{Status: stage.StatusCompleted, Message: fmt.Sprintf("%d key findings", len(findings))}, nil
}
