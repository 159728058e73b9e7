package stage

import (
	"context"
	"fmt"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/logbook"
	"github.com/kingrea/windscout/internal/site"
)

// Context carries shared runtime dependencies into every stage. One
// Context serves one site for the duration of a run; the Assessment it
// holds is mutated only by the stages executing against it, in order.
type Context struct {
	Ctx           context.Context
	Config        *config.Config
	Site          *site.Site
	Assessment    *assessment.Assessment
	Collaborators collab.Set
	Logbook       *logbook.Logbook
}

// NewContext builds a Context with a fresh Assessment for the site.
func NewContext(ctx context.Context, cfg *config.Config, s *site.Site, set collab.Set, lb *logbook.Logbook) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Ctx:           ctx,
		Config:        cfg,
		Site:          s,
		Assessment:    assessment.New(s.Name),
		Collaborators: set,
		Logbook:       lb,
	}
}

// ValidateContext guards stage entry points against partial wiring.
func ValidateContext(stageID string, ctx *Context) error {
	if ctx == nil {
		return fmt.Errorf("%s: stage context is required", stageID)
	}
	if ctx.Config == nil {
		return fmt.Errorf("%s: config is required", stageID)
	}
	if ctx.Site == nil {
		return fmt.Errorf("%s: site is required", stageID)
	}
	if ctx.Assessment == nil {
		return fmt.Errorf("%s: assessment is required", stageID)
	}
	if err := ctx.Collaborators.Validate(); err != nil {
		return fmt.Errorf("%s: %w", stageID, err)
	}
	return nil
}
