package collab

import (
	"context"
	"errors"
	"time"

	"github.com/kingrea/windscout/internal/site"
)

// WithTimeout returns a Set whose calls each run under their own deadline.
// Expiry surfaces as a *TimeoutError so the aggregator can record it as a
// stage-local failure. A non-positive duration returns the set unchanged.
func WithTimeout(set Set, d time.Duration) Set {
	if d <= 0 {
		return set
	}
	return Set{
		Geocoder:           timeoutGeocoder{set.Geocoder, d},
		ImageSource:        timeoutImageSource{set.ImageSource, d},
		ImageClassifier:    timeoutImageClassifier{set.ImageClassifier, d},
		SocialSearch:       timeoutSocialSearch{set.SocialSearch, d},
		LegalSearch:        timeoutLegalSearch{set.LegalSearch, d},
		LandRegistry:       timeoutLandRegistry{set.LandRegistry, d},
		ReportAnalyzer:     timeoutReportAnalyzer{set.ReportAnalyzer, d},
		GridInfrastructure: timeoutGridInfrastructure{set.GridInfrastructure, d},
	}
}

func deadlineErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}
	return err
}

type timeoutGeocoder struct {
	inner Geocoder
	d     time.Duration
}

func (g timeoutGeocoder) Resolve(ctx context.Context, location string) (site.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, g.d)
	defer cancel()
	coords, err := g.inner.Resolve(ctx, location)
	return coords, deadlineErr("geocode", err)
}

type timeoutImageSource struct {
	inner ImageSource
	d     time.Duration
}

func (s timeoutImageSource) ListImages(ctx context.Context, latitude, longitude float64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	refs, err := s.inner.ListImages(ctx, latitude, longitude)
	return refs, deadlineErr("list images", err)
}

type timeoutImageClassifier struct {
	inner ImageClassifier
	d     time.Duration
}

func (c timeoutImageClassifier) Classify(ctx context.Context, imageRef, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	text, err := c.inner.Classify(ctx, imageRef, prompt)
	return text, deadlineErr("classify image", err)
}

type timeoutSocialSearch struct {
	inner SocialSearch
	d     time.Duration
}

func (s timeoutSocialSearch) Search(ctx context.Context, location string) ([]Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	posts, err := s.inner.Search(ctx, location)
	return posts, deadlineErr("social search", err)
}

type timeoutLegalSearch struct {
	inner LegalSearch
	d     time.Duration
}

func (s timeoutLegalSearch) HasLawsuits(ctx context.Context, location string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	found, err := s.inner.HasLawsuits(ctx, location)
	return found, deadlineErr("legal search", err)
}

type timeoutLandRegistry struct {
	inner LandRegistry
	d     time.Duration
}

func (r timeoutLandRegistry) Lookup(ctx context.Context, latitude, longitude float64) (LandRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.d)
	defer cancel()
	record, err := r.inner.Lookup(ctx, latitude, longitude)
	return record, deadlineErr("land lookup", err)
}

type timeoutReportAnalyzer struct {
	inner ReportAnalyzer
	d     time.Duration
}

func (a timeoutReportAnalyzer) ExtractFindings(ctx context.Context, report string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.d)
	defer cancel()
	findings, err := a.inner.ExtractFindings(ctx, report)
	return findings, deadlineErr("report analysis", err)
}

type timeoutGridInfrastructure struct {
	inner GridInfrastructure
	d     time.Duration
}

func (g timeoutGridInfrastructure) NearestHub(ctx context.Context, latitude, longitude float64) (HubEstimate, error) {
	ctx, cancel := context.WithTimeout(ctx, g.d)
	defer cancel()
	hub, err := g.inner.NearestHub(ctx, latitude, longitude)
	return hub, deadlineErr("grid lookup", err)
}
