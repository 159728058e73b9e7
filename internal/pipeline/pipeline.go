// Package pipeline runs the assessment stages for each candidate site,
// strictly sequentially, and aggregates the results into a run record
// with a cross-site comparison.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/compare"
	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/logbook"
	"github.com/kingrea/windscout/internal/site"
	"github.com/kingrea/windscout/internal/stage"
	"github.com/kingrea/windscout/internal/stages"
)

// Runner executes the stage order against candidate sites.
type Runner struct {
	registry *stage.Registry
	order    []string
	clock    func() time.Time
	newRunID func() string
}

// Option customizes the runner instance.
type Option func(*Runner)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithRunID injects a deterministic run ID source (primarily for tests).
func WithRunID(gen func() string) Option {
	return func(r *Runner) {
		if gen != nil {
			r.newRunID = gen
		}
	}
}

// WithOrder overrides the canonical stage order.
func WithOrder(order []string) Option {
	return func(r *Runner) {
		if len(order) > 0 {
			r.order = append([]string(nil), order...)
		}
	}
}

// New wires a runner to the stage registry.
func New(registry *stage.Registry, opts ...Option) (*Runner, error) {
	if registry == nil {
		return nil, fmt.Errorf("pipeline: stage registry is required")
	}
	runner := &Runner{
		registry: registry,
		order:    append([]string(nil), stages.Order...),
		clock:    time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(runner)
		}
	}
	return runner, nil
}

// Request carries everything one run needs.
type Request struct {
	Config        *config.Config
	Collaborators collab.Set
	Logbook       *logbook.Logbook
	// Sites are the two candidate site names, in presentation order.
	Sites []string
}

// StageStatus records one stage execution for one site.
type StageStatus struct {
	ID      string       `json:"id"`
	Status  stage.Status `json:"status"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SiteRun holds the assessment and stage trace for one site.
type SiteRun struct {
	Site       string                 `json:"site"`
	Assessment *assessment.Assessment `json:"assessment"`
	Stages     []StageStatus          `json:"stages"`
}

// Run is the aggregated result of assessing both candidates.
type Run struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Sites      []SiteRun           `json:"sites"`
	Comparison *compare.Comparison `json:"comparison,omitempty"`
	// ComparisonError carries the incomplete-assessment failure when one
	// of the sites is missing a required dimension. The failure is
	// attached here instead of aborting the run, so both raw
	// assessments stay inspectable.
	ComparisonError string `json:"comparison_error,omitempty"`
}

// Complete reports whether the run produced a comparison.
func (r Run) Complete() bool {
	return r.Comparison != nil
}

// Run assesses both candidates in order and derives the comparison.
// Stage failures are recorded on the affected assessment and downstream
// stages still execute with whatever inputs remain available; the run
// itself only errors on invalid input.
func (r *Runner) Run(ctx context.Context, req Request) (Run, error) {
	if req.Config == nil {
		return Run{}, fmt.Errorf("pipeline: config is required")
	}
	if len(req.Sites) != 2 {
		return Run{}, fmt.Errorf("pipeline: exactly two sites are required, got %d", len(req.Sites))
	}
	if err := req.Collaborators.Validate(); err != nil {
		return Run{}, fmt.Errorf("pipeline: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	set := collab.WithTimeout(req.Collaborators, req.Config.Timeout())

	run := Run{
		RunID:     r.newRunID(),
		StartedAt: r.clock().UTC(),
	}
	for _, name := range req.Sites {
		candidate, err := site.New(name)
		if err != nil {
			return Run{}, fmt.Errorf("pipeline: %w", err)
		}
		siteRun := r.assess(ctx, req, set, candidate)
		run.Sites = append(run.Sites, siteRun)
	}
	run.FinishedAt = r.clock().UTC()

	cmp, err := compare.New(run.Sites[0].Assessment, run.Sites[1].Assessment)
	if err != nil {
		run.ComparisonError = err.Error()
		if req.Logbook != nil {
			req.Logbook.Warn("comparison unavailable: %v", err)
		}
		return run, nil
	}
	run.Comparison = cmp
	if req.Logbook != nil {
		req.Logbook.Info("recommendation: %s on %s", cmp.Recommendation.Site, cmp.Recommendation.Dimension)
	}
	return run, nil
}

// assess runs every stage for one site. There is no shared state between
// site runs; each gets a fresh assessment and stage context.
func (r *Runner) assess(ctx context.Context, req Request, set collab.Set, candidate *site.Site) SiteRun {
	sctx := stage.NewContext(ctx, req.Config, candidate, set, req.Logbook)
	siteRun := SiteRun{
		Site:       candidate.Name,
		Assessment: sctx.Assessment,
	}
	for _, id := range r.order {
		status := r.runStage(sctx, id)
		siteRun.Stages = append(siteRun.Stages, status)
		if req.Logbook != nil {
			req.Logbook.Info("%s / %s: %s %s", candidate.Name, id, status.Status, status.Message)
		}
	}
	return siteRun
}

func (r *Runner) runStage(sctx *stage.Context, id string) StageStatus {
	s, err := r.registry.Resolve(id)
	if err != nil {
		sctx.Assessment.RecordFailure(id, err)
		return StageStatus{ID: id, Status: stage.StatusFailed, Error: err.Error()}
	}
	result, err := s.Run(sctx)
	status := StageStatus{ID: id, Status: result.Status, Message: result.Message}
	if err != nil {
		status.Status = stage.StatusFailed
		status.Error = err.Error()
		sctx.Assessment.RecordFailure(id, err)
	}
	return status
}
