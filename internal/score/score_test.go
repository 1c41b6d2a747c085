package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bradyp19/market-intel/internal/model"
)

func adequateSummary() *model.Summary {
	return &model.Summary{
		Company:  "Snowflake",
		Title:    "New Feature Announcement",
		URL:      "https://example.com/blog/post",
		Content:  strings.Repeat("Detailed announcement content. ", 10),
		Features: []string{"Enhanced data sharing", "Improved performance"},
		Summary:  "Snowflake announced enhanced data sharing.",
	}
}

func TestScore_NoPenalties(t *testing.T) {
	t.Parallel()
	sc := NewScorer()
	q := sc.Score(adequateSummary())

	assert.InDelta(t, 1.0, q.Confidence, 1e-9)
	assert.False(t, q.NeedsReview)
	assert.Empty(t, q.Reasons)
	assert.Empty(t, q.Reason())
}

func TestScore_BothPenaltiesCompose(t *testing.T) {
	t.Parallel()
	sc := NewScorer()
	s := &model.Summary{Content: "", Features: nil}
	q := sc.Score(s)

	// 1.0 × 0.7 × 0.8 = 0.56, strictly below the 0.6 review threshold.
	assert.InDelta(t, 0.56, q.Confidence, 1e-9)
	assert.True(t, q.NeedsReview)
	assert.Len(t, q.Reasons, 2)
	assert.Contains(t, q.Reason(), "; ")

	// Empty feature list replaced in place with the sentinel.
	assert.Equal(t, []string{model.DefaultFeature}, s.Features)
}

func TestScore_ContentPenaltyOnly(t *testing.T) {
	t.Parallel()
	sc := NewScorer()
	s := adequateSummary()
	s.Content = "too short"
	q := sc.Score(s)

	assert.InDelta(t, 0.7, q.Confidence, 1e-9)
	assert.False(t, q.NeedsReview)
	assert.Equal(t, "content too short or missing", q.Reason())
}

func TestScore_Monotonic(t *testing.T) {
	t.Parallel()
	sc := NewScorer()

	full := sc.Score(adequateSummary())

	s := adequateSummary()
	s.Features = nil
	penalized := sc.Score(s)

	assert.LessOrEqual(t, penalized.Confidence, full.Confidence,
		"a triggered penalty must never increase confidence")
}

func TestScore_InvalidInput(t *testing.T) {
	t.Parallel()
	sc := NewScorer()
	q := sc.Score(nil)

	assert.Zero(t, q.Confidence)
	assert.True(t, q.NeedsReview)
	assert.Equal(t, "invalid summary format", q.Reason())
}

func TestScore_StripsEmptySocialBreakdown(t *testing.T) {
	t.Parallel()
	sc := NewScorer()

	s := adequateSummary()
	s.Social = &model.SocialBreakdown{TotalMentions: 0, ByPlatform: map[string]int{}}
	sc.Score(s)
	assert.Nil(t, s.Social)

	s = adequateSummary()
	s.Social = &model.SocialBreakdown{TotalMentions: 4, ByPlatform: map[string]int{"reddit": 4}}
	sc.Score(s)
	assert.NotNil(t, s.Social, "non-empty breakdown must be kept")
}
