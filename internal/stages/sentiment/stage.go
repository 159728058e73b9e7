// Package sentiment gathers community sentiment for a site: social media
// posts tallied per label, plus a lawsuit flag from legal search.
package sentiment

import (
	"fmt"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/stage"
)

const (
	stageID      = "sentiment"
	stageVersion = "1.0.0"
)

// Stage assesses community sentiment and legal risk.
type Stage struct {
	info stage.Info
}

// Register installs the sentiment stage factory.
func Register(reg *stage.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stageID, func() (stage.Stage, error) {
		return New(), nil
	})
}

// New constructs a sentiment stage.
func New() *Stage {
	return &Stage{
		info: stage.Info{
			ID:          stageID,
			Name:        "Sentiment Assessor",
			Description: "Searches social media and legal records for community sentiment.",
			Version:     stageVersion,
		},
	}
}

// Info implements stage.Stage.
func (s *Stage) Info() stage.Info { return s.info }

// Run collects posts and lawsuit findings for the site name. Raw posts
// are preserved in source order; the tally counts posts per label so the
// comparison step has a decision value to work with.
func (s *Stage) Run(ctx *stage.Context) (stage.Result, error) {
	if err := stage.ValidateContext(stageID, ctx); err != nil {
		return stage.Result{Status: stage.StatusFailed}, err
	}
	posts, err := ctx.Collaborators.SocialSearch.Search(ctx.Ctx, ctx.Site.Name)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: social search: %w", stageID, err)
	}
	lawsuits, err := ctx.Collaborators.LegalSearch.HasLawsuits(ctx.Ctx, ctx.Site.Name)
	if err != nil {
		return stage.Result{Status: stage.StatusFailed}, fmt.Errorf("%s: legal search: %w", stageID, err)
	}

	tally := make(map[string]int, 2)
	for _, post := range posts {
		tally[post.Sentiment]++
	}
	ctx.Assessment.Sentiment = &assessment.SentimentSection{
		Posts:         posts,
		Tally:         tally,
		LawsuitsFound: lawsuits,
	}

	message := fmt.Sprintf("%d posts, lawsuits=%t", len(posts), lawsuits)
	return stage.Result{Status: stage.StatusCompleted, Message: message}, nil
}
