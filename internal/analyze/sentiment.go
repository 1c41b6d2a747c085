package analyze

import "strings"

// Sentiment holds normalized keyword-match scores. The three fields sum
// to 1.0 for non-empty input.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Label returns the dominant class: "positive", "negative", or "neutral".
func (s Sentiment) Label() string {
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return "positive"
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return "negative"
	default:
		return "neutral"
	}
}

var positiveWords = map[string]bool{
	"innovative": true, "powerful": true, "seamless": true,
	"efficient": true, "advanced": true, "breakthrough": true,
	"revolutionary": true, "game-changing": true, "cutting-edge": true,
}

var negativeWords = map[string]bool{
	"limited": true, "complex": true, "challenging": true,
	"restricted": true, "basic": true,
}

// ScoreSentiment performs basic keyword-ratio sentiment over the text.
// Empty input is fully neutral.
func ScoreSentiment(text string) Sentiment {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Sentiment{Neutral: 1.0}
	}

	var pos, neg int
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()")
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}

	total := float64(len(words))
	p := float64(pos) / total
	n := float64(neg) / total
	return Sentiment{Positive: p, Negative: n, Neutral: 1 - p - n}
}
