package model

import "time"

// DefaultFeature is the sentinel used when feature extraction yields nothing.
const DefaultFeature = "No specific features identified"

// Summary is the analyzed form of an announcement: the article fields plus
// the NLP collaborator's feature list and prose summary.
type Summary struct {
	Company  string    `json:"company"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
	Features []string  `json:"features"`
	Summary  string    `json:"summary"`

	// Social is the optional mention breakdown. Stripped by the scorer
	// when it totals zero mentions across platforms.
	Social *SocialBreakdown `json:"social,omitempty"`
}

// SocialBreakdown aggregates mention counts per platform and sentiment.
type SocialBreakdown struct {
	TotalMentions int            `json:"total_mentions"`
	ByPlatform    map[string]int `json:"by_platform"`
	BySentiment   map[string]int `json:"by_sentiment"`
}

// QualityScore is the scorer's verdict on a summary. Confidence starts at
// 1.0 and is only ever reduced by penalties.
type QualityScore struct {
	Confidence  float64  `json:"confidence"`
	NeedsReview bool     `json:"needs_review"`
	Reasons     []string `json:"reasons,omitempty"`
}

// Reason joins the individual penalty reasons, or returns "" if none fired.
func (q QualityScore) Reason() string {
	if len(q.Reasons) == 0 {
		return ""
	}
	s := q.Reasons[0]
	for _, r := range q.Reasons[1:] {
		s += "; " + r
	}
	return s
}

// Coverage counts a single company's crawl outcomes for one run.
type Coverage struct {
	Company    string `json:"company"`
	Total      int    `json:"total"`
	Scraped    int    `json:"scraped"`
	Summarized int    `json:"summarized"`
}
