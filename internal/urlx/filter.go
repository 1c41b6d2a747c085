package urlx

import (
	"regexp"
	"strings"
)

// excludePatterns rejects listing pages, tracking links, and non-content
// sections. Doubled segments catch bad joins like /blog/blog/.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/blog/blog/`),
	regexp.MustCompile(`/company/newsroom/company/newsroom/`),
	regexp.MustCompile(`/tags/`),
	regexp.MustCompile(`/categories/`),
	regexp.MustCompile(`/roles/`),
	regexp.MustCompile(`\?Type_equal=`),
	regexp.MustCompile(`\?utm_source=`),
	regexp.MustCompile(`\?utm_medium=`),
	regexp.MustCompile(`\?utm_campaign=`),
	regexp.MustCompile(`/author/`),
	regexp.MustCompile(`/page/`),
	regexp.MustCompile(`/about/`),
	regexp.MustCompile(`/contact/`),
	regexp.MustCompile(`/demo/`),
	regexp.MustCompile(`/pricing/`),
	regexp.MustCompile(`/solutions/`),
}

// Filter decides whether a discovered URL is worth fetching. Zero value
// rejects only the static pattern set.
type Filter struct {
	// ExcludedKeywords are case-insensitive substrings that disqualify a
	// URL. Combine the global list with the per-company list.
	ExcludedKeywords []string
}

// NewFilter builds a Filter from the combined excluded-keyword lists.
func NewFilter(keywordLists ...[]string) *Filter {
	f := &Filter{}
	for _, list := range keywordLists {
		f.ExcludedKeywords = append(f.ExcludedKeywords, list...)
	}
	return f
}

// Accepted reports whether the URL passes the exclusion patterns and the
// excluded-keyword check.
func (f *Filter) Accepted(rawURL string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(rawURL) {
			return false
		}
	}
	lower := strings.ToLower(rawURL)
	for _, kw := range f.ExcludedKeywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
