package report_test

import (
	"strings"
	"testing"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/compare"
	"github.com/kingrea/windscout/internal/pipeline"
	"github.com/kingrea/windscout/internal/report"
	"github.com/kingrea/windscout/internal/site"
	"github.com/kingrea/windscout/internal/stage"
)

func sampleAssessment(name string) *assessment.Assessment {
	a := assessment.New(name)
	a.Coordinates = &site.Coordinates{Latitude: 40.1, Longitude: -105.2}
	a.Imagery = &assessment.ImagerySection{Viability: assessment.ViabilityHigh}
	a.Sentiment = &assessment.SentimentSection{Tally: map[string]int{"positive": 2, "negative": 1}}
	a.Land = &assessment.LandSection{
		Ownership:             collab.OwnershipPublic,
		AcquisitionDifficulty: collab.DifficultyLow,
	}
	a.Environment = &assessment.EnvironmentSection{KeyFindings: []string{"Low water usage"}}
	a.Grid = &assessment.GridSection{Distance: 3, EstimatedCost: 30000}
	return a
}

func sampleRun() pipeline.Run {
	alpha := sampleAssessment("Alpha Ridge")
	beta := sampleAssessment("Beta Flats")
	beta.Imagery.Viability = assessment.ViabilityModerate
	cmp, _ := compare.New(alpha, beta)
	return pipeline.Run{
		RunID: "run-0001",
		Sites: []pipeline.SiteRun{
			{Site: "Alpha Ridge", Assessment: alpha, Stages: []pipeline.StageStatus{
				{ID: "geocode", Status: stage.StatusCompleted, Message: "resolved"},
			}},
			{Site: "Beta Flats", Assessment: beta, Stages: []pipeline.StageStatus{
				{ID: "geocode", Status: stage.StatusFailed, Error: "resolve failed"},
			}},
		},
		Comparison: cmp,
	}
}

func TestRenderRunNamesBothSitesAndRecommendation(t *testing.T) {
	out := report.RenderRun(sampleRun())
	for _, want := range []string{"run-0001", "Alpha Ridge", "Beta Flats", "Recommendation"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered run missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "viability") {
		t.Fatalf("rendered run should name the deciding dimension:\n%s", out)
	}
}

func TestRenderRunShowsComparisonError(t *testing.T) {
	run := sampleRun()
	run.Comparison = nil
	run.ComparisonError = "compare: assessment incomplete: Beta Flats is missing grid"
	out := report.RenderRun(run)
	if !strings.Contains(out, "Comparison unavailable") {
		t.Fatalf("expected comparison error surfaced:\n%s", out)
	}
}

func TestRenderAssessmentListsFailures(t *testing.T) {
	a := sampleAssessment("Alpha Ridge")
	a.Failures = []assessment.StageFailure{{StageID: "geocode", Err: "boom"}}
	out := report.RenderAssessment(a)
	if !strings.Contains(out, "geocode") || !strings.Contains(out, "boom") {
		t.Fatalf("failures missing from render:\n%s", out)
	}
	if report.RenderAssessment(nil) != "" {
		t.Fatalf("nil assessment should render empty")
	}
}
