// Package analyze turns announcement text into a feature list and a prose
// summary. The Analyzer interface is the seam for an external NLP service;
// RegexAnalyzer is the built-in pattern-based implementation.
package analyze

import (
	"regexp"
	"strings"

	"github.com/bradyp19/market-intel/internal/model"
)

// Sentinel summary values. The driver rejects summaries equal to one of
// these (case-insensitively) instead of retaining them.
const (
	NoFeaturesSummary = "No specific features identified."
	NoContentSummary  = "No content available for summary."
	ErrorSummary      = "Error generating summary. Please review the original content."
)

// Analyzer extracts features and produces a summary from article text.
// Features never returns an empty slice; when nothing is identified it
// returns the single sentinel feature.
type Analyzer interface {
	Features(text string) []string
	Summarize(text string, features []string) string
}

// featurePatterns match sentences describing launches, enhancements,
// integrations, partnerships, and acquisitions.
var featurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)new (?:feature|capability|functionality)`),
	regexp.MustCompile(`(?i)introduc(?:e|ing) (?:new|the)`),
	regexp.MustCompile(`(?i)launch(?:ed|ing) (?:new|the)`),
	regexp.MustCompile(`(?i)enhance(?:d|ment)`),
	regexp.MustCompile(`(?i)improve(?:d|ment)`),
	regexp.MustCompile(`(?i)add(?:ed|ing) (?:new|support for)`),
	regexp.MustCompile(`(?i)integrat(?:e|ed|ion)`),
	regexp.MustCompile(`(?i)partnership with`),
	regexp.MustCompile(`(?i)acquir(?:e|ed)`),
}

const minFeatureLength = 10

// RegexAnalyzer implements Analyzer with pattern matching over sentences.
type RegexAnalyzer struct{}

// NewRegexAnalyzer returns the built-in analyzer.
func NewRegexAnalyzer() *RegexAnalyzer { return &RegexAnalyzer{} }

// Features returns the deduplicated sentences matching a feature pattern,
// or the sentinel single-element list when nothing qualifies.
func (a *RegexAnalyzer) Features(text string) []string {
	if text == "" {
		return []string{model.DefaultFeature}
	}

	var features []string
	for _, re := range featurePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			sentence := sentenceAround(text, loc[0], loc[1])
			if len(sentence) > minFeatureLength {
				features = append(features, sentence)
			}
		}
	}

	// Deduplicate, preserving order; collapse internal whitespace.
	seen := make(map[string]bool, len(features))
	cleaned := features[:0]
	for _, f := range features {
		f = strings.Join(strings.Fields(f), " ")
		if f == "" || seen[f] || len(f) <= minFeatureLength {
			continue
		}
		seen[f] = true
		cleaned = append(cleaned, f)
	}

	if len(cleaned) == 0 {
		return []string{model.DefaultFeature}
	}
	return cleaned
}

// Summarize builds a short summary: up to three sentences mentioning an
// identified feature, else the first three sentences of the text.
func (a *RegexAnalyzer) Summarize(text string, features []string) string {
	if text == "" {
		return NoContentSummary
	}

	sentences := splitSentences(text)

	var picked []string
	for _, sent := range sentences {
		// Features carry collapsed whitespace, so compare against the
		// sentence in the same normal form.
		lower := strings.ToLower(strings.Join(strings.Fields(sent), " "))
		for _, f := range features {
			if f == model.DefaultFeature {
				continue
			}
			if strings.Contains(lower, strings.ToLower(f)) {
				picked = append(picked, sent)
				break
			}
		}
		if len(picked) >= 3 {
			break
		}
	}

	if len(picked) == 0 {
		n := min(3, len(sentences))
		picked = sentences[:n]
	}
	if len(picked) == 0 {
		return NoContentSummary
	}
	return strings.Join(picked, " ")
}

// sentenceAround returns the sentence containing [start,end), bounded by
// the surrounding periods.
func sentenceAround(text string, start, end int) string {
	s := strings.LastIndex(text[:start], ".")
	if s == -1 {
		s = 0
	} else {
		s++
	}
	e := strings.Index(text[end:], ".")
	if e == -1 {
		e = len(text)
	} else {
		e += end
	}
	return strings.TrimSpace(text[s:e])
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p+".")
	}
	return sentences
}
