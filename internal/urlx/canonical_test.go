package urlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()
	base := "https://www.snowflake.com/blog"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative path", "/2025/01/01/new-feature", "https://www.snowflake.com/2025/01/01/new-feature"},
		{"absolute url", "https://www.snowflake.com/blog/2025/01/01/new-feature", "https://www.snowflake.com/blog/2025/01/01/new-feature"},
		{"doubled segment collapsed", "https://www.snowflake.com/blog/blog/2025/01/01/new-feature", "https://www.snowflake.com/blog/2025/01/01/new-feature"},
		{"query dropped", "https://www.snowflake.com/blog/post?utm_source=x", "https://www.snowflake.com/blog/post"},
		{"fragment dropped", "https://www.snowflake.com/blog/post#section", "https://www.snowflake.com/blog/post"},
		{"host only", "https://www.snowflake.com", "https://www.snowflake.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Canonicalize(tt.in, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	t.Parallel()
	base := "https://www.databricks.com/company/newsroom"
	inputs := []string{
		"/company/newsroom/company/newsroom/2025/02/01/announcement",
		"../blog/post",
		"https://www.databricks.com/blog/post?x=1#top",
	}
	for _, in := range inputs {
		once, err := Canonicalize(in, base)
		require.NoError(t, err)
		twice, err := Canonicalize(once, base)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "canonicalize must be idempotent for %q", in)
	}
}

func TestCanonicalize_BadInput(t *testing.T) {
	t.Parallel()
	_, err := Canonicalize("://bad", "https://example.com")
	assert.Error(t, err)
	_, err = Canonicalize("/ok", "://bad")
	assert.Error(t, err)
}

func TestFilter_Accepted(t *testing.T) {
	t.Parallel()
	f := NewFilter([]string{"webinar"}, []string{"Careers"})

	rejected := []string{
		"https://www.snowflake.com/blog/blog/2025/01/01/new-feature",
		"https://www.databricks.com/company/newsroom/company/newsroom/2025/02/01/x",
		"https://www.domo.com/blog/tags/job",
		"https://www.snowflake.com/blog/author/john-doe",
		"https://www.databricks.com/blog?Type_equal=press",
		"https://www.domo.com/blog/post?utm_source=news",
		"https://www.tableau.com/about/press",
		"https://www.tableau.com/blog/upcoming-webinar-recap",
		"https://www.tableau.com/CAREERS/open-roles",
	}
	for _, u := range rejected {
		assert.False(t, f.Accepted(u), "expected rejection: %s", u)
	}

	accepted := []string{
		"https://example.com/blog/2025/01/01/new-feature",
		"https://www.domo.com/blog/2025/03/01/release",
	}
	for _, u := range accepted {
		assert.True(t, f.Accepted(u), "expected acceptance: %s", u)
	}
}

func TestFilter_NoKeywords(t *testing.T) {
	t.Parallel()
	var f Filter
	assert.True(t, f.Accepted("https://example.com/blog/post"))
	assert.False(t, f.Accepted("https://example.com/blog/page/2"))
}
