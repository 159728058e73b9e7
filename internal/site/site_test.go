package site_test

import (
	"testing"

	"github.com/kingrea/windscout/internal/site"
)

func TestNewTrimsName(t *testing.T) {
	s, err := site.New("  Altamont Ridge  ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Name != "Altamont Ridge" {
		t.Fatalf("expected trimmed name, got %q", s.Name)
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := site.New("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestCoordinatesValidate(t *testing.T) {
	valid := site.Coordinates{Latitude: 34.0522, Longitude: -118.2437}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid coordinates rejected: %v", err)
	}
	if err := (site.Coordinates{Latitude: 91}).Validate(); err == nil {
		t.Fatalf("expected latitude range error")
	}
	if err := (site.Coordinates{Longitude: -181}).Validate(); err == nil {
		t.Fatalf("expected longitude range error")
	}
}

func TestKeyNormalizes(t *testing.T) {
	if got := site.Key("  Paloma Flats "); got != "paloma flats" {
		t.Fatalf("unexpected key %q", got)
	}
}
