package model

import "time"

// Article is a single extracted page: title, body text, and publish date.
// The publish date falls back to the fetch time when the page carries none.
type Article struct {
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// Announcement is an Article that passed both classifier filters, with a
// note about why it was accepted.
type Announcement struct {
	Article
	// AcceptedBy records the filter outcome: "keyword" for a topical
	// match, "fallback" when the article was promoted as the most recent
	// extraction for a company with no classified announcements.
	AcceptedBy string `json:"accepted_by"`
}

// CandidateURL is a discovered link together with the source page it came
// from. Two candidates with the same Canonical form are the same URL.
type CandidateURL struct {
	Canonical string `json:"canonical"`
	Source    string `json:"source"`
}
