package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bradyp19/market-intel/internal/model"
)

func TestRegexAnalyzer_Features(t *testing.T) {
	t.Parallel()
	a := NewRegexAnalyzer()

	text := "Today we are introducing the next generation of our platform. " +
		"The release includes a new feature for cross-region data sharing. " +
		"Pricing is unchanged."
	features := a.Features(text)

	assert.NotEmpty(t, features)
	assert.NotContains(t, features, model.DefaultFeature)
	joined := ""
	for _, f := range features {
		joined += f + " "
	}
	assert.Contains(t, joined, "new feature for cross-region data sharing")
}

func TestRegexAnalyzer_Features_Sentinel(t *testing.T) {
	t.Parallel()
	a := NewRegexAnalyzer()

	assert.Equal(t, []string{model.DefaultFeature}, a.Features(""))
	assert.Equal(t, []string{model.DefaultFeature},
		a.Features("The quarterly report is attached for your review."))
}

func TestRegexAnalyzer_Features_Dedup(t *testing.T) {
	t.Parallel()
	a := NewRegexAnalyzer()

	// Two patterns hit the same sentence; it must appear once.
	text := "We launched the new integration and enhanced the connector in one sentence."
	features := a.Features(text)
	seen := map[string]int{}
	for _, f := range features {
		seen[f]++
	}
	for f, n := range seen {
		assert.Equal(t, 1, n, "feature duplicated: %q", f)
	}
}

func TestRegexAnalyzer_Summarize(t *testing.T) {
	t.Parallel()
	a := NewRegexAnalyzer()

	text := "Acme ships often. We added support for streaming ingestion today. More soon."
	features := a.Features(text)
	summary := a.Summarize(text, features)

	assert.Contains(t, summary, "streaming ingestion")
}

func TestRegexAnalyzer_Summarize_Fallbacks(t *testing.T) {
	t.Parallel()
	a := NewRegexAnalyzer()

	assert.Equal(t, NoContentSummary, a.Summarize("", nil))

	// No feature-bearing sentences: the first sentences are used.
	text := "First sentence here. Second sentence here. Third sentence here. Fourth."
	summary := a.Summarize(text, []string{model.DefaultFeature})
	assert.Contains(t, summary, "First sentence here.")
	assert.Contains(t, summary, "Third sentence here.")
	assert.NotContains(t, summary, "Fourth")
}

func TestScoreSentiment(t *testing.T) {
	t.Parallel()

	s := ScoreSentiment("This innovative and powerful platform is seamless.")
	assert.Greater(t, s.Positive, 0.0)
	assert.Equal(t, "neutral", s.Label()) // neutral still dominates the ratio

	s = ScoreSentiment("")
	assert.Equal(t, Sentiment{Neutral: 1.0}, s)
	assert.Equal(t, "neutral", s.Label())
}
