package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledReturnsNothing(t *testing.T) {
	t.Parallel()
	mentions, err := Disabled{}.Mentions(context.Background(), "Snowflake", "Cortex")
	require.NoError(t, err)
	assert.Empty(t, mentions)
}

func TestAggregate(t *testing.T) {
	t.Parallel()
	mentions := []Mention{
		{Platform: "reddit", Text: "This launch is excellent, love the new feature"},
		{Platform: "reddit", Text: "Terrible rollout, broken and disappointing"},
		{Platform: "hackernews", Text: "The release notes mention a new connector"},
	}

	out := Aggregate(mentions)
	assert.Equal(t, 3, out.TotalMentions)
	assert.Equal(t, 2, out.ByPlatform["reddit"])
	assert.Equal(t, 1, out.ByPlatform["hackernews"])
	assert.Equal(t, 1, out.BySentiment["positive"])
	assert.Equal(t, 1, out.BySentiment["negative"])
	assert.Equal(t, 1, out.BySentiment["neutral"])
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()
	out := Aggregate(nil)
	assert.Zero(t, out.TotalMentions)
	assert.Empty(t, out.ByPlatform)
}
