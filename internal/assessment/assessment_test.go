package assessment_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/site"
)

func TestMissingDimensionsOnFreshAssessment(t *testing.T) {
	a := assessment.New("Alpha Ridge")
	want := []string{"coordinates", "imagery", "sentiment", "land", "environment", "grid"}
	if got := a.MissingDimensions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if a.Complete() {
		t.Fatalf("fresh assessment must not be complete")
	}
}

func TestCompleteAfterAllSections(t *testing.T) {
	a := assessment.New("Alpha Ridge")
	a.Coordinates = &site.Coordinates{Latitude: 40.1, Longitude: -105.2}
	a.Imagery = &assessment.ImagerySection{Viability: assessment.ViabilityHigh}
	a.Sentiment = &assessment.SentimentSection{Tally: map[string]int{"positive": 1}}
	a.Land = &assessment.LandSection{
		Ownership:             collab.OwnershipPublic,
		AcquisitionDifficulty: collab.DifficultyLow,
	}
	a.Environment = &assessment.EnvironmentSection{KeyFindings: []string{"Low water usage"}}
	a.Grid = &assessment.GridSection{Distance: 3, EstimatedCost: 12000}

	if !a.Complete() {
		t.Fatalf("expected complete, still missing %v", a.MissingDimensions())
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestRecordFailure(t *testing.T) {
	a := assessment.New("Alpha Ridge")
	a.RecordFailure("geocode", errors.New("boom"))
	a.RecordFailure("imagery", nil)
	if !a.Failed() {
		t.Fatalf("expected failure recorded")
	}
	if len(a.Failures) != 1 {
		t.Fatalf("nil errors must be ignored, got %d failures", len(a.Failures))
	}
	if a.Failures[0].StageID != "geocode" || a.Failures[0].Err != "boom" {
		t.Fatalf("unexpected failure %+v", a.Failures[0])
	}
}

func TestSentimentBalanceAndLabels(t *testing.T) {
	s := &assessment.SentimentSection{
		Tally: map[string]int{"positive": 3, "negative": 1, "neutral": 2},
	}
	if got := s.Balance(); got != 2 {
		t.Fatalf("expected balance +2, got %d", got)
	}
	want := []string{"negative", "neutral", "positive"}
	if got := s.Labels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected labels %v, got %v", want, got)
	}
	var nilSection *assessment.SentimentSection
	if nilSection.Balance() != 0 || nilSection.Labels() != nil {
		t.Fatalf("nil section must be inert")
	}
}

func TestViabilityRank(t *testing.T) {
	if assessment.ViabilityHigh.Rank() <= assessment.ViabilityModerate.Rank() {
		t.Fatalf("high must outrank moderate")
	}
	if assessment.ViabilityModerate.Rank() <= assessment.ViabilityLow.Rank() {
		t.Fatalf("moderate must outrank low")
	}
	if assessment.Viability("bogus").Rank() != 0 {
		t.Fatalf("unknown viability must rank zero")
	}
}

func TestValidateRejectsBadSections(t *testing.T) {
	a := assessment.New("Alpha Ridge")
	a.Land = &assessment.LandSection{Ownership: "corporate", AcquisitionDifficulty: collab.DifficultyLow}
	if err := a.Validate(); err == nil {
		t.Fatalf("expected invalid ownership error")
	}
	a.Land = nil
	a.Imagery = &assessment.ImagerySection{Viability: "excellent"}
	if err := a.Validate(); err == nil {
		t.Fatalf("expected invalid viability error")
	}
}
