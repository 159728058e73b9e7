// Package compare derives the cross-site comparison and recommendation
// from two completed assessments. A Comparison is produced once and
// never mutated.
package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/windscout/internal/assessment"
)

// ErrIncompleteAssessment is returned when a required dimension is
// missing for either site. The comparison never guesses around gaps.
var ErrIncompleteAssessment = errors.New("compare: assessment incomplete")

// Dimension names one assessed axis used in the recommendation.
type Dimension string

const (
	DimensionViability   Dimension = "viability"
	DimensionGridCost    Dimension = "grid cost"
	DimensionAcquisition Dimension = "acquisition difficulty"
	DimensionSentiment   Dimension = "sentiment balance"
	// DimensionParity marks a recommendation where every dimension tied.
	DimensionParity Dimension = "parity"
)

// Side is the flattened per-site view of every assessed dimension.
type Side struct {
	Site             string                       `json:"site"`
	Viability        assessment.Viability         `json:"viability"`
	GridCost         float64                      `json:"grid_cost"`
	GridDistance     float64                      `json:"grid_distance"`
	Ownership        string                       `json:"ownership"`
	Acquisition      string                       `json:"acquisition_difficulty"`
	SentimentBalance int                          `json:"sentiment_balance"`
	SentimentTally   map[string]int               `json:"sentiment_tally"`
	LawsuitsFound    bool                         `json:"lawsuits_found"`
	KeyFindings      []string                     `json:"key_findings"`
	acquisitionRank  int
}

// Recommendation names the preferred site and the dimension that decided it.
type Recommendation struct {
	Site      string    `json:"site"`
	Dimension Dimension `json:"dimension"`
	Rationale string    `json:"rationale"`
}

// Comparison is the final cross-site synthesis.
type Comparison struct {
	Sides          [2]Side        `json:"sides"`
	Recommendation Recommendation `json:"recommendation"`
}

// New builds a Comparison from two completed assessments. Both must be
// complete; otherwise it fails with ErrIncompleteAssessment naming the
// missing dimensions.
func New(a, b *assessment.Assessment) (*Comparison, error) {
	if err := requireComplete(a); err != nil {
		return nil, err
	}
	if err := requireComplete(b); err != nil {
		return nil, err
	}
	cmp := &Comparison{Sides: [2]Side{flatten(a), flatten(b)}}
	cmp.Recommendation = recommend(cmp.Sides[0], cmp.Sides[1])
	return cmp, nil
}

func requireComplete(a *assessment.Assessment) error {
	if a == nil {
		return fmt.Errorf("%w: assessment is nil", ErrIncompleteAssessment)
	}
	if missing := a.MissingDimensions(); len(missing) > 0 {
		return fmt.Errorf("%w: %s is missing %s", ErrIncompleteAssessment, a.Site, strings.Join(missing, ", "))
	}
	return nil
}

func flatten(a *assessment.Assessment) Side {
	return Side{
		Site:             a.Site,
		Viability:        a.Imagery.Viability,
		GridCost:         a.Grid.EstimatedCost,
		GridDistance:     a.Grid.Distance,
		Ownership:        string(a.Land.Ownership),
		Acquisition:      string(a.Land.AcquisitionDifficulty),
		SentimentBalance: a.Sentiment.Balance(),
		SentimentTally:   a.Sentiment.Tally,
		LawsuitsFound:    a.Sentiment.LawsuitsFound,
		KeyFindings:      append([]string(nil), a.Environment.KeyFindings...),
		acquisitionRank:  a.Land.AcquisitionDifficulty.Rank(),
	}
}

// recommend applies the documented tie-break order: viability first,
// then grid cost (lower wins), then acquisition difficulty (lower wins),
// then sentiment balance (higher wins). When every dimension ties the
// first site is named with a parity rationale, keeping the output
// deterministic.
func recommend(first, second Side) Recommendation {
	if first.Viability.Rank() != second.Viability.Rank() {
		winner, loser := first, second
		if second.Viability.Rank() > first.Viability.Rank() {
			winner, loser = second, first
		}
		return Recommendation{
			Site:      winner.Site,
			Dimension: DimensionViability,
			Rationale: fmt.Sprintf("%s viability beats %s", winner.Viability, loser.Viability),
		}
	}
	if first.GridCost != second.GridCost {
		winner, loser := first, second
		if second.GridCost < first.GridCost {
			winner, loser = second, first
		}
		return Recommendation{
			Site:      winner.Site,
			Dimension: DimensionGridCost,
			Rationale: fmt.Sprintf("grid connection cost %.0f vs %.0f", winner.GridCost, loser.GridCost),
		}
	}
	if first.acquisitionRank != second.acquisitionRank {
		winner, loser := first, second
		if second.acquisitionRank < first.acquisitionRank {
			winner, loser = second, first
		}
		return Recommendation{
			Site:      winner.Site,
			Dimension: DimensionAcquisition,
			Rationale: fmt.Sprintf("%s acquisition difficulty vs %s", winner.Acquisition, loser.Acquisition),
		}
	}
	if first.SentimentBalance != second.SentimentBalance {
		winner, loser := first, second
		if second.SentimentBalance > first.SentimentBalance {
			winner, loser = second, first
		}
		return Recommendation{
			Site:      winner.Site,
			Dimension: DimensionSentiment,
			Rationale: fmt.Sprintf("sentiment balance %+d vs %+d", winner.SentimentBalance, loser.SentimentBalance),
		}
	}
	return Recommendation{
		Site:      first.Site,
		Dimension: DimensionParity,
		Rationale: "all assessed dimensions are comparable; defaulting to the first candidate",
	}
}
