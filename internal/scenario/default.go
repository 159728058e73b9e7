package scenario

import (
	"github.com/kingrea/windscout/internal/collab"
	"github.com/kingrea/windscout/internal/site"
)

const beachImageRef = "gs://site_comparisons/beach_image.png"

// Default returns the built-in reference dataset. Its single default
// entry answers for every site, which keeps a fresh project runnable
// before any scenario has been written.
func Default() Definition {
	return Definition{
		Name: "reference",
		Findings: []string{
			"No endangered species",
			"Low water usage",
		},
		Sites: []SiteEntry{
			{
				Name:        collab.DefaultKey,
				Coordinates: &site.Coordinates{Latitude: 34.0522, Longitude: -118.2437},
				Images:      []string{beachImageRef},
				Analysis: map[string]string{
					beachImageRef: "Flat open terrain with sparse vegetation and no existing " +
						"infrastructure nearby. The area appears suitable for an onshore wind farm.",
				},
				Posts: []collab.Post{
					{Sentiment: "negative", Text: "Concerned about wind farm noise"},
					{Sentiment: "positive", Text: "Renewable energy is crucial!"},
				},
				Lawsuits: false,
				Land: collab.LandRecord{
					Ownership:             collab.OwnershipPrivate,
					AcquisitionDifficulty: collab.DifficultyHigh,
				},
				Hub: collab.HubEstimate{Distance: 5, EstimatedCost: 50000},
			},
		},
	}.Normalized()
}
