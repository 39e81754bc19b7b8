// Package classifier implements the context-based category hypothesis.
// It scores an image's surrounding text against every taxonomy entry's
// indicator vocabulary without ever calling the inference service; absence
// of signal is a valid, non-error outcome.
package classifier

import (
	"regexp"
	"strings"

	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
)

// Hypothesis is a pre-visual category prediction. An empty Category means
// unknown; Confidence is always 0 in that case.
type Hypothesis struct {
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Unknown reports whether the hypothesis carries no category.
func (h Hypothesis) Unknown() bool {
	return h.Category == ""
}

// Classify scores the context window against every taxonomy entry and
// returns the strictly best-scoring entry as the hypothesis. An entry's
// score is the fraction of its context indicators found in the window
// (case-insensitive, on word boundaries). A tie at the maximum score or
// an all-zero score yields the unknown hypothesis: ties are never broken
// by taxonomy declaration order.
func Classify(w document.Window, table *taxonomy.Table) Hypothesis {
	text := w.Heading + "\n" + w.Preceding + "\n" + w.Following

	best := 0.0
	bestCount := 0
	bestCategory := ""

	for _, category := range table.Categories() {
		entry, _ := table.Entry(category)
		score := score(text, entry.ContextIndicators)

		switch {
		case score > best:
			best = score
			bestCount = 1
			bestCategory = category
		case score == best && score > 0:
			bestCount++
		}
	}

	if best == 0 || bestCount > 1 {
		return Hypothesis{}
	}

	return Hypothesis{Category: bestCategory, Confidence: best}
}

func score(text string, indicators []string) float64 {
	if len(indicators) == 0 {
		return 0
	}

	hits := 0
	for _, indicator := range indicators {
		if containsTerm(text, indicator) {
			hits++
		}
	}

	return float64(hits) / float64(len(indicators))
}

// containsTerm reports whether term occurs in text as a whole word or
// phrase, case-insensitively.
func containsTerm(text, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}

	return pattern.MatchString(text)
}
