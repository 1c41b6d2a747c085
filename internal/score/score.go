// Package score rates summaries with a multiplicative penalty model.
package score

import (
	"go.uber.org/zap"

	"github.com/bradyp19/market-intel/internal/model"
)

// Scorer applies independent multiplicative penalties to a summary.
// Confidence starts at 1.0; each triggered penalty multiplies it down and
// records a reason. Penalties compose, they never short-circuit.
type Scorer struct {
	// MinConfidence is the review threshold: a final confidence strictly
	// below it sets NeedsReview.
	MinConfidence float64
	// MinContentLength is the shortest content that avoids the ×0.7 penalty.
	MinContentLength int
	// MinFeatureCount is the fewest features that avoid the ×0.8 penalty.
	MinFeatureCount int
}

// NewScorer returns a Scorer with the default thresholds.
func NewScorer() *Scorer {
	return &Scorer{
		MinConfidence:    0.6,
		MinContentLength: 100,
		MinFeatureCount:  1,
	}
}

const (
	contentPenalty = 0.7
	featurePenalty = 0.8
)

// Score rates s. A nil summary is malformed input and immediately yields
// confidence 0.0 with the review flag set.
//
// Side effects on s: an empty feature list is replaced with the sentinel
// single-element list, and a social breakdown totalling zero mentions is
// stripped.
func (sc *Scorer) Score(s *model.Summary) model.QualityScore {
	if s == nil {
		zap.L().Warn("score: invalid summary input")
		return model.QualityScore{
			Confidence:  0.0,
			NeedsReview: true,
			Reasons:     []string{"invalid summary format"},
		}
	}

	confidence := 1.0
	var reasons []string

	if len(s.Content) < sc.MinContentLength {
		confidence *= contentPenalty
		reasons = append(reasons, "content too short or missing")
	}

	if len(s.Features) < sc.MinFeatureCount {
		confidence *= featurePenalty
		reasons = append(reasons, "insufficient features identified")
		if len(s.Features) == 0 {
			s.Features = []string{model.DefaultFeature}
		}
	}

	if s.Social != nil && s.Social.TotalMentions == 0 {
		s.Social = nil
	}

	return model.QualityScore{
		Confidence:  confidence,
		NeedsReview: confidence < sc.MinConfidence,
		Reasons:     reasons,
	}
}
