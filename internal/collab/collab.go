// Package collab declares the external collaborator contracts the
// assessment core composes over. The core never implements real lookups;
// production systems plug in live clients, tests and the shipped fixture
// provide deterministic data.
package collab

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrea/windscout/internal/site"
)

// ErrNotFound signals that a location name could not be resolved.
var ErrNotFound = errors.New("collab: location not found")

// ClassificationError reports a failed per-image classification call.
// The imagery stage absorbs these inline rather than aborting the batch.
type ClassificationError struct {
	ImageRef string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("collab: classify %s: %v", e.ImageRef, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// TimeoutError marks a collaborator call that exceeded its deadline.
// The aggregator treats it as a stage-local failure.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("collab: %s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Ownership enumerates land ownership classes.
type Ownership string

const (
	OwnershipPrivate Ownership = "private"
	OwnershipPublic  Ownership = "public"
	OwnershipMixed   Ownership = "mixed"
	OwnershipUnknown Ownership = "unknown"
)

// Valid reports whether the ownership value is one of the known classes.
func (o Ownership) Valid() bool {
	switch o {
	case OwnershipPrivate, OwnershipPublic, OwnershipMixed, OwnershipUnknown:
		return true
	}
	return false
}

// Difficulty enumerates acquisition difficulty levels, low to high.
type Difficulty string

const (
	DifficultyLow      Difficulty = "low"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHigh     Difficulty = "high"
)

// Valid reports whether the difficulty value is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyModerate, DifficultyHigh:
		return true
	}
	return false
}

// Rank orders difficulties so comparisons can prefer the easier site.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyLow:
		return 1
	case DifficultyModerate:
		return 2
	case DifficultyHigh:
		return 3
	}
	return 0
}

// Post is one social media entry tagged with a sentiment label.
type Post struct {
	Sentiment string `json:"sentiment" yaml:"sentiment"`
	Text      string `json:"text" yaml:"text"`
}

// LandRecord describes ownership and how hard acquisition is expected to be.
type LandRecord struct {
	Ownership             Ownership  `json:"ownership" yaml:"ownership"`
	AcquisitionDifficulty Difficulty `json:"acquisition_difficulty" yaml:"acquisition_difficulty"`
}

// HubEstimate describes the nearest grid connection point.
type HubEstimate struct {
	Distance      float64 `json:"distance" yaml:"distance"`
	EstimatedCost float64 `json:"estimated_cost" yaml:"estimated_cost"`
}

// Geocoder resolves a location name to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (site.Coordinates, error)
}

// ImageSource lists image references covering a coordinate.
type ImageSource interface {
	ListImages(ctx context.Context, latitude, longitude float64) ([]string, error)
}

// ImageClassifier produces free-text analysis for one image reference.
type ImageClassifier interface {
	Classify(ctx context.Context, imageRef, prompt string) (string, error)
}

// SocialSearch returns posts mentioning a location, in source order.
type SocialSearch interface {
	Search(ctx context.Context, location string) ([]Post, error)
}

// LegalSearch reports whether lawsuits related to a location exist.
type LegalSearch interface {
	HasLawsuits(ctx context.Context, location string) (bool, error)
}

// LandRegistry looks up ownership information for a coordinate.
type LandRegistry interface {
	Lookup(ctx context.Context, latitude, longitude float64) (LandRecord, error)
}

// ReportAnalyzer extracts ordered key findings from a report text.
type ReportAnalyzer interface {
	ExtractFindings(ctx context.Context, report string) ([]string, error)
}

// GridInfrastructure locates the nearest electrical hub for a coordinate.
type GridInfrastructure interface {
	NearestHub(ctx context.Context, latitude, longitude float64) (HubEstimate, error)
}

// Set bundles every collaborator the pipeline needs.
type Set struct {
	Geocoder           Geocoder
	ImageSource        ImageSource
	ImageClassifier    ImageClassifier
	SocialSearch       SocialSearch
	LegalSearch        LegalSearch
	LandRegistry       LandRegistry
	ReportAnalyzer     ReportAnalyzer
	GridInfrastructure GridInfrastructure
}

// Validate rejects a set with missing members.
func (s Set) Validate() error {
	if s.Geocoder == nil {
		return fmt.Errorf("collab: geocoder is required")
	}
	if s.ImageSource == nil {
		return fmt.Errorf("collab: image source is required")
	}
	if s.ImageClassifier == nil {
		return fmt.Errorf("collab: image classifier is required")
	}
	if s.SocialSearch == nil {
		return fmt.Errorf("collab: social search is required")
	}
	if s.LegalSearch == nil {
		return fmt.Errorf("collab: legal search is required")
	}
	if s.LandRegistry == nil {
		return fmt.Errorf("collab: land registry is required")
	}
	if s.ReportAnalyzer == nil {
		return fmt.Errorf("collab: report analyzer is required")
	}
	if s.GridInfrastructure == nil {
		return fmt.Errorf("collab: grid infrastructure is required")
	}
	return nil
}
