// Package social collects public chatter about announced products. The
// pipeline treats it as optional enrichment: a monitor that fails or returns
// nothing leaves the summary without a social section.
package social

import (
	"context"

	"github.com/bradyp19/market-intel/internal/analyze"
	"github.com/bradyp19/market-intel/internal/model"
)

// Mention is one public post referencing a company or product.
type Mention struct {
	Platform string
	Text     string
}

// Monitor finds recent mentions of a product announcement.
type Monitor interface {
	Mentions(ctx context.Context, company, product string) ([]Mention, error)
}

// Disabled is a Monitor that never returns mentions. Used when no social
// data source is configured.
type Disabled struct{}

func (Disabled) Mentions(context.Context, string, string) ([]Mention, error) {
	return nil, nil
}

// Aggregate tallies mentions by platform and sentiment label.
func Aggregate(mentions []Mention) *model.SocialBreakdown {
	out := &model.SocialBreakdown{
		TotalMentions: len(mentions),
		ByPlatform:    map[string]int{},
		BySentiment:   map[string]int{},
	}
	for _, m := range mentions {
		out.ByPlatform[m.Platform]++
		out.BySentiment[analyze.ScoreSentiment(m.Text).Label()]++
	}
	return out
}
