package workflow

import (
	"context"
	"regexp"
	"strings"

	"github.com/JaimeStill/scribe/internal/classifier"
	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/internal/taxonomy"
	"github.com/JaimeStill/scribe/pkg/formatting"
)

type confirmResponse struct {
	Category    string   `json:"category"`
	Instances   int      `json:"instances"`
	QualityNote string   `json:"quality_note"`
	Stereotypes []string `json:"stereotypes"`
}

var (
	stereotypePattern = regexp.MustCompile(`<<[^<>]+>>`)
	multiPattern      = regexp.MustCompile(`(?i)\b(two|three|four|several|multiple)\b[^.\n]*\bdiagrams\b`)
)

// Confirm runs the visual confirmation stage: it asks the inference
// service to confirm or correct the context hypothesis from the closed
// category list and applies the response to the record. The hypothesis
// fields are never rewritten; only the confirmed category, quality note,
// stereotype, and flag fields change. Retry exhaustion falls back to a
// confident hypothesis or the reserved unclassified category and the
// pipeline continues.
func Confirm(ctx context.Context, rt *Runtime, rec *document.Record, imageURI string) {
	prompt := prompts.Confirm(rt.Taxonomy, rec.Image, classifier.Hypothesis{
		Category:   rec.Hypothesis,
		Confidence: rec.Confidence,
	})

	raw, err := rt.Vision.Analyze(ctx, prompt, imageURI)
	if err != nil {
		if ctx.Err() != nil {
			markCancelled(rec)
			return
		}

		rec.AddFlag(document.FlagConfirmationFailed)
		rec.Confirmed = fallbackCategory(rt, rec)
		rec.Status = document.StatusConfirmed
		return
	}

	applyConfirmation(rt, rec, raw)
	rec.Status = document.StatusConfirmed
}

// applyConfirmation parses the service's answer as JSON first, then falls
// back to matching the free text against the closed category vocabulary.
// The response is untrusted text throughout: categories resolve only
// against the taxonomy, and stereotype claims survive only when their
// literal <<name>> token appears in the raw response.
func applyConfirmation(rt *Runtime, rec *document.Record, raw string) {
	parsed, err := formatting.Parse[confirmResponse](raw)
	if err != nil {
		applyFreeText(rt, rec, raw)
		return
	}

	category, ok := rt.Taxonomy.Resolve(parsed.Category)
	if !ok {
		category = fallbackCategory(rt, rec)
	}
	rec.Confirmed = category

	if parsed.Instances > 1 {
		rec.AddFlag(document.FlagMultiDiagram)
	}

	rec.QualityNote = strings.TrimSpace(parsed.QualityNote)
	rec.Stereotypes = filterStereotypes(raw, parsed.Stereotypes)
}

func applyFreeText(rt *Runtime, rec *document.Record, raw string) {
	category, ok := rt.Taxonomy.Resolve(raw)
	if !ok {
		category = fallbackCategory(rt, rec)
	}
	rec.Confirmed = category

	if multiPattern.MatchString(raw) {
		rec.AddFlag(document.FlagMultiDiagram)
	}

	rec.QualityNote = qualityNoteFromText(raw)
	rec.Stereotypes = stereotypePattern.FindAllString(raw, -1)
}

// fallbackCategory resolves the confirmed category when the response
// names no known category: the hypothesis when confident enough,
// otherwise the reserved unclassified category.
func fallbackCategory(rt *Runtime, rec *document.Record) string {
	if rec.Hypothesis != "" && rec.Confidence >= rt.ConfidenceThreshold {
		return rec.Hypothesis
	}
	return taxonomy.Unclassified
}

// filterStereotypes keeps only claims whose literal stereotype token
// appears in the raw response; inferred-but-unstated relationships are
// dropped regardless of category.
func filterStereotypes(raw string, claims []string) []string {
	var kept []string
	for _, claim := range claims {
		token := strings.Trim(strings.TrimSpace(claim), "<>")
		if token == "" {
			continue
		}

		literal := "<<" + token + ">>"
		if strings.Contains(raw, literal) {
			kept = append(kept, literal)
		}
	}
	return kept
}

var qualityMarkers = []string{"illegible", "unreadable", "too blurry", "too degraded"}

// qualityNoteFromText extracts the sentence reporting degraded input from
// a free-text response, or "" when the response reports none.
func qualityNoteFromText(raw string) string {
	lower := strings.ToLower(raw)
	for _, marker := range qualityMarkers {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}

		start := strings.LastIndex(lower[:idx], ". ") + 1
		end := strings.Index(lower[idx:], ".")
		if end < 0 {
			end = len(raw)
		} else {
			end += idx + 1
		}

		return strings.TrimSpace(raw[start:end])
	}
	return ""
}
