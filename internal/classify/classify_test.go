package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAnnouncement(t *testing.T) {
	t.Parallel()
	companyKw := []string{"data sharing", "Snowpark"}
	globalKw := []string{"announce", "launch", "new feature"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"global keyword", "We are excited to ANNOUNCE our latest release.", true},
		{"company keyword mixed case", "Improvements to Data Sharing across regions.", true},
		{"substring containment", "The launched product is live.", true}, // "launch" is a substring
		{"no keyword", "Join our upcoming session to learn about careers.", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAnnouncement(tt.text, companyKw, globalKw))
		})
	}
}

func TestIsAnnouncement_NoKeywords(t *testing.T) {
	t.Parallel()
	assert.False(t, IsAnnouncement("anything at all"))
	assert.False(t, IsAnnouncement("anything", nil, []string{""}))
}

func TestIsExcluded(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		title string
		url   string
		want  bool
	}{
		{"privacy in title", "Our Privacy Commitment", "https://x.com/post", true},
		{"careers in url", "Engineering at Acme", "https://x.com/careers/platform", true},
		{"blog-prefixed variant", "Great read", "https://x.com/blog/webinar-replay", true},
		{"investor relations", "Q3 Earnings-Call Replay", "https://x.com/news/1", true},
		{"training page", "Acme Academy", "https://x.com/academy/intro", true},
		{"esg", "Sustainability Report 2025", "https://x.com/about", true},
		{"plain product post", "Acme launches vector search", "https://x.com/blog/vector-search", false},
		{"case sensitivity", "PRIVACY", "https://x.com/p", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsExcluded(tt.title, tt.url))
		})
	}
}

func TestIsExcluded_BodyTextIgnored(t *testing.T) {
	t.Parallel()
	// Only title and URL are inspected; a clean title/url passes even if the
	// body would mention excluded topics.
	assert.False(t, IsExcluded("New connector release", "https://x.com/blog/connector"))
}
