// Package site defines the candidate-site value types shared across the
// assessment stages. A Site is created from user input and never mutated;
// coordinates resolved for it live on the Assessment, not here.
package site

import (
	"fmt"
	"strings"
)

// Coordinates holds a position in floating-point degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// String renders coordinates in a compact lat/long form.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Validate rejects coordinates outside the valid degree ranges.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("site: latitude %.4f out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("site: longitude %.4f out of range", c.Longitude)
	}
	return nil
}

// Site names one candidate location under assessment.
type Site struct {
	Name string `json:"name"`
}

// New validates the location name and returns an immutable Site.
func New(name string) (*Site, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("site: name is required")
	}
	return &Site{Name: trimmed}, nil
}

// Key returns the normalized form used for dataset lookups.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
