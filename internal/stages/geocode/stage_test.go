package geocode_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/site"
	"github.com/kingrea/windscout/internal/stage"
	"github.com/kingrea/windscout/internal/stages/geocode"
)

func newTestContext(t *testing.T, siteName string, data collab.FixtureData) *stage.Context {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	candidate, err := site.New(siteName)
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}
	return stage.NewContext(context.Background(), cfg, candidate, collab.Fixture(data), nil)
}

func TestRunResolvesCoordinates(t *testing.T) {
	data := collab.FixtureData{
		Sites: map[string]collab.SiteData{
			"alpha ridge": {
				Coordinates: &site.Coordinates{Latitude: 40.1, Longitude: -105.2},
			},
		},
	}
	sctx := newTestContext(t, "Alpha Ridge", data)

	result, err := geocode.New().Run(sctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != stage.StatusCompleted {
		t.Fatalf("expected completed, got %s", result.Status)
	}
	if sctx.Assessment.Coordinates == nil {
		t.Fatalf("coordinates not stored on assessment")
	}
	if sctx.Assessment.Coordinates.Latitude != 40.1 {
		t.Fatalf("unexpected coordinates %v", sctx.Assessment.Coordinates)
	}
	if !strings.Contains(result.Message, "Alpha Ridge") {
		t.Fatalf("message should name the site: %q", result.Message)
	}
}

func TestRunFailsWhenLocationUnknown(t *testing.T) {
	sctx := newTestContext(t, "Alpha Ridge", collab.FixtureData{})

	result, err := geocode.New().Run(sctx)
	if !errors.Is(err, collab.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if result.Status != stage.StatusFailed {
		t.Fatalf("expected failed status, got %s", result.Status)
	}
	if sctx.Assessment.Coordinates != nil {
		t.Fatalf("failed resolve must not store coordinates")
	}
}

func TestRunRejectsOutOfRangeCoordinates(t *testing.T) {
	data := collab.FixtureData{
		Sites: map[string]collab.SiteData{
			"alpha ridge": {
				Coordinates: &site.Coordinates{Latitude: 120, Longitude: 0},
			},
		},
	}
	sctx := newTestContext(t, "Alpha Ridge", data)

	result, err := geocode.New().Run(sctx)
	if err == nil {
		t.Fatalf("expected range error")
	}
	if result.Status != stage.StatusFailed {
		t.Fatalf("expected failed status, got %s", result.Status)
	}
}
