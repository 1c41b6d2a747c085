// Package format renders retained summaries as text records.
package format

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/bradyp19/market-intel/internal/model"
)

// InsightLine is the fixed boilerplate appended to every record.
const InsightLine = "Executive Insight: This announcement highlights new capabilities or strategic direction relevant to customers or the business."

// Record renders a summary as its output artifact: headline, source line,
// summary line, bulleted feature list, and the fixed insight line. A nil
// summary is malformed input and errors instead of rendering.
func Record(s *model.Summary) (string, error) {
	if s == nil {
		return "", eris.New("format: nil summary")
	}
	var b strings.Builder

	dateStr := ""
	if !s.Date.IsZero() {
		dateStr = s.Date.Format("2006-01-02")
	}
	fmt.Fprintf(&b, "%s (%s, %s)\n", title(s), s.Company, dateStr)
	fmt.Fprintf(&b, "Source: %s\n", s.URL)
	fmt.Fprintf(&b, "Summary: %s\n", strings.TrimSpace(s.Summary))

	b.WriteString("Key Features:")
	if len(s.Features) == 0 {
		b.WriteString("\n• " + model.DefaultFeature + ".")
	}
	for _, feat := range s.Features {
		// Split "Theme: description" bullets when a colon is present.
		if theme, desc, ok := strings.Cut(feat, ":"); ok {
			fmt.Fprintf(&b, "\n• %s: %s", strings.TrimSpace(theme), strings.TrimSpace(desc))
		} else {
			fmt.Fprintf(&b, "\n• %s", strings.TrimSpace(feat))
		}
	}
	b.WriteString("\n")

	b.WriteString(InsightLine)
	b.WriteString("\n")
	return b.String(), nil
}

func title(s *model.Summary) string {
	if s.Title == "" {
		return "Untitled"
	}
	return s.Title
}

// Filename derives a filesystem-safe markdown filename from a title,
// truncated to 50 characters before the extension.
func Filename(titleText string) string {
	lower := strings.ToLower(titleText)
	var b strings.Builder
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	name := b.String()
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "untitled"
	}
	return name + ".md"
}
