// Package classify decides whether an extracted article is a genuine
// product or business announcement.
package classify

import "strings"

// IsAnnouncement reports whether the text contains any of the company or
// global keywords. Matching is literal case-insensitive substring
// containment, not tokenized.
func IsAnnouncement(text string, keywordLists ...[]string) bool {
	lower := strings.ToLower(text)
	for _, list := range keywordLists {
		for _, kw := range list {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// exclusionRoots covers legal, privacy, HR, ESG, investor-relations,
// community, and training pages that masquerade as content. Each root is
// matched both bare and with a /blog/ prefix; see exclusionTerms.
var exclusionRoots = []string{
	"privacy",
	"privacy-policy",
	"legal",
	"terms-of-service",
	"terms-of-use",
	"cookie-policy",
	"cookies",
	"compliance",
	"gdpr",
	"accessibility",
	"trust-center",
	"security-policy",
	"careers",
	"career",
	"jobs",
	"hiring",
	"join-us",
	"join-our-team",
	"life-at",
	"benefits",
	"internship",
	"diversity",
	"inclusion",
	"esg",
	"sustainability",
	"corporate-responsibility",
	"social-impact",
	"investor-relations",
	"investors",
	"shareholders",
	"annual-report",
	"earnings-call",
	"sec-filing",
	"community",
	"user-group",
	"meetup",
	"forum",
	"ambassador",
	"training",
	"certification",
	"certifications",
	"academy",
	"learning-path",
	"instructor-led",
	"bootcamp",
	"webinar",
	"workshop",
	"office-hours",
	"customer-stories",
	"case-study",
	"newsletter",
	"subscribe",
	"unsubscribe",
	"sitemap",
	"cookie-preferences",
	"modern-slavery",
	"code-of-conduct",
	"whistleblower",
	"ethics",
}

// exclusionTerms is the full vocabulary: every root plus its /blog/-prefixed
// variant, built once at init.
var exclusionTerms = buildExclusionTerms(exclusionRoots)

func buildExclusionTerms(roots []string) []string {
	terms := make([]string, 0, 2*len(roots))
	for _, r := range roots {
		terms = append(terms, r, "/blog/"+r)
	}
	return terms
}

// IsExcluded reports whether the lowercased title or URL contains any
// exclusion term. It inspects metadata only, never body text, and callers
// must evaluate it before accepting a topical match.
func IsExcluded(title, url string) bool {
	t := strings.ToLower(title)
	u := strings.ToLower(url)
	for _, term := range exclusionTerms {
		if strings.Contains(t, term) || strings.Contains(u, term) {
			return true
		}
	}
	return false
}
