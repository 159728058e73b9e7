package collab_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/site"
)

// slowCollaborators blocks every call until the per-call deadline fires.
type slowCollaborators struct{}

func (slowCollaborators) Resolve(ctx context.Context, _ string) (site.Coordinates, error) {
	<-ctx.Done()
	return site.Coordinates{}, ctx.Err()
}

func (slowCollaborators) ListImages(ctx context.Context, _, _ float64) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowCollaborators) Classify(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowCollaborators) Search(ctx context.Context, _ string) ([]collab.Post, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowCollaborators) HasLawsuits(ctx context.Context, _ string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func (slowCollaborators) Lookup(ctx context.Context, _, _ float64) (collab.LandRecord, error) {
	<-ctx.Done()
	return collab.LandRecord{}, ctx.Err()
}

func (slowCollaborators) ExtractFindings(ctx context.Context, _ string) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowCollaborators) NearestHub(ctx context.Context, _, _ float64) (collab.HubEstimate, error) {
	<-ctx.Done()
	return collab.HubEstimate{}, ctx.Err()
}

func slowSet() collab.Set {
	s := slowCollaborators{}
	return collab.Set{
		Geocoder:           s,
		ImageSource:        s,
		ImageClassifier:    s,
		SocialSearch:       s,
		LegalSearch:        s,
		LandRegistry:       s,
		ReportAnalyzer:     s,
		GridInfrastructure: s,
	}
}

func TestWithTimeoutConvertsDeadlineExceeded(t *testing.T) {
	set := collab.WithTimeout(slowSet(), 10*time.Millisecond)
	_, err := set.Geocoder.Resolve(context.Background(), "Alpha Ridge")
	var timeoutErr *collab.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if timeoutErr.Op != "geocode" {
		t.Fatalf("unexpected op %q", timeoutErr.Op)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestWithTimeoutCoversEveryCollaborator(t *testing.T) {
	set := collab.WithTimeout(slowSet(), 10*time.Millisecond)
	ctx := context.Background()
	calls := []struct {
		name string
		call func() error
	}{
		{"list images", func() error { _, err := set.ImageSource.ListImages(ctx, 0, 0); return err }},
		{"classify image", func() error { _, err := set.ImageClassifier.Classify(ctx, "ref", "prompt"); return err }},
		{"social search", func() error { _, err := set.SocialSearch.Search(ctx, "x"); return err }},
		{"legal search", func() error { _, err := set.LegalSearch.HasLawsuits(ctx, "x"); return err }},
		{"land lookup", func() error { _, err := set.LandRegistry.Lookup(ctx, 0, 0); return err }},
		{"report analysis", func() error { _, err := set.ReportAnalyzer.ExtractFindings(ctx, "r"); return err }},
		{"grid lookup", func() error { _, err := set.GridInfrastructure.NearestHub(ctx, 0, 0); return err }},
	}
	for _, entry := range calls {
		err := entry.call()
		var timeoutErr *collab.TimeoutError
		if !errors.As(err, &timeoutErr) {
			t.Fatalf("%s: expected TimeoutError, got %v", entry.name, err)
		}
		if timeoutErr.Op != entry.name {
			t.Fatalf("expected op %q, got %q", entry.name, timeoutErr.Op)
		}
	}
}

func TestWithTimeoutPassesThroughOtherErrors(t *testing.T) {
	set := collab.WithTimeout(collab.Fixture(collab.FixtureData{}), time.Second)
	_, err := set.Geocoder.Resolve(context.Background(), "Nowhere")
	if !errors.Is(err, collab.ErrNotFound) {
		t.Fatalf("expected ErrNotFound untouched, got %v", err)
	}
	var timeoutErr *collab.TimeoutError
	if errors.As(err, &timeoutErr) {
		t.Fatalf("unexpected timeout conversion: %v", err)
	}
}

func TestWithTimeoutZeroDurationIsNoop(t *testing.T) {
	base := collab.Fixture(collab.FixtureData{})
	set := collab.WithTimeout(base, 0)
	if set != base {
		t.Fatalf("expected unchanged set for non-positive duration")
	}
}
