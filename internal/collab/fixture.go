package collab

import (
	"context"
	"errors"
	"sort"

	"github.com/kingrea/windscout/internal/site"
)

// DefaultKey is the dataset entry used when a site has no entry of its own.
const DefaultKey = "default"

// SiteData is the deterministic dataset backing one site in a fixture.
type SiteData struct {
	Coordinates *site.Coordinates
	Images      []string
	Analyses    map[string]string
	Posts       []Post
	Lawsuits    bool
	Land        LandRecord
	Hub         HubEstimate
}

// FixtureData seeds a fixture Set. Site entries are keyed by normalized
// site name; the DefaultKey entry serves any site without its own entry.
type FixtureData struct {
	Sites    map[string]SiteData
	Findings []string
}

// Fixture builds a collaborator Set that answers every call from the
// provided dataset. All answers are deterministic, so repeated pipeline
// runs over the same data produce identical assessments.
func Fixture(data FixtureData) Set {
	f := &fixture{data: data}
	return Set{
		Geocoder:           f,
		ImageSource:        f,
		ImageClassifier:    f,
		SocialSearch:       f,
		LegalSearch:        f,
		LandRegistry:       f,
		ReportAnalyzer:     f,
		GridInfrastructure: f,
	}
}

type fixture struct {
	data FixtureData
}

func (f *fixture) lookup(location string) (SiteData, bool) {
	if entry, ok := f.data.Sites[site.Key(location)]; ok {
		return entry, true
	}
	entry, ok := f.data.Sites[DefaultKey]
	return entry, ok
}

// siteKeys returns the dataset keys in sorted order. Scans over the
// site map must not depend on map iteration order, or duplicated
// values across entries would resolve differently call to call.
func (f *fixture) siteKeys() []string {
	keys := make([]string, 0, len(f.data.Sites))
	for key := range f.data.Sites {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// byCoordinates reverse-maps coordinates to the site entry that issued
// them. The fixture only ever hands out coordinates from its own dataset,
// so an exact match is sufficient; ties on duplicated coordinates go to
// the first key in sorted order.
func (f *fixture) byCoordinates(latitude, longitude float64) (SiteData, bool) {
	for _, key := range f.siteKeys() {
		entry := f.data.Sites[key]
		if entry.Coordinates == nil {
			continue
		}
		if entry.Coordinates.Latitude == latitude && entry.Coordinates.Longitude == longitude {
			return entry, true
		}
	}
	entry, ok := f.data.Sites[DefaultKey]
	return entry, ok
}

func (f *fixture) Resolve(_ context.Context, location string) (site.Coordinates, error) {
	entry, ok := f.lookup(location)
	if !ok || entry.Coordinates == nil {
		return site.Coordinates{}, ErrNotFound
	}
	return *entry.Coordinates, nil
}

func (f *fixture) ListImages(_ context.Context, latitude, longitude float64) ([]string, error) {
	entry, ok := f.byCoordinates(latitude, longitude)
	if !ok {
		return nil, nil
	}
	return append([]string(nil), entry.Images...), nil
}

func (f *fixture) Classify(_ context.Context, imageRef, _ string) (string, error) {
	for _, key := range f.siteKeys() {
		if text, ok := f.data.Sites[key].Analyses[imageRef]; ok {
			return text, nil
		}
	}
	return "", &ClassificationError{ImageRef: imageRef, Err: errors.New("no analysis available")}
}

func (f *fixture) Search(_ context.Context, location string) ([]Post, error) {
	entry, _ := f.lookup(location)
	return append([]Post(nil), entry.Posts...), nil
}

func (f *fixture) HasLawsuits(_ context.Context, location string) (bool, error) {
	entry, _ := f.lookup(location)
	return entry.Lawsuits, nil
}

func (f *fixture) Lookup(_ context.Context, latitude, longitude float64) (LandRecord, error) {
	entry, ok := f.byCoordinates(latitude, longitude)
	if !ok {
		return LandRecord{Ownership: OwnershipUnknown, AcquisitionDifficulty: DifficultyModerate}, nil
	}
	return entry.Land, nil
}

func (f *fixture) ExtractFindings(_ context.Context, _ string) ([]string, error) {
	return append([]string(nil), f.data.Findings...), nil
}

func (f *fixture) NearestHub(_ context.Context, latitude, longitude float64) (HubEstimate, error) {
	entry, ok := f.byCoordinates(latitude, longitude)
	if !ok {
		return HubEstimate{}, nil
	}
	return entry.Hub, nil
}
