package workflow

import (
	"context"
	"strings"

	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/prompts"
	"github.com/JaimeStill/scribe/internal/taxonomy"
)

// Describe runs the description stage: it selects the confirmed
// category's prompt template, invokes the inference service, and applies
// the response to the record. Service output is never silently discarded;
// category policy violations only annotate the record. Retry exhaustion
// emits a degraded placeholder and the record still terminates described.
func Describe(ctx context.Context, rt *Runtime, rec *document.Record, imageURI string) {
	raw, err := rt.Vision.Analyze(ctx, describePrompt(rt, rec), imageURI)
	if err != nil {
		if ctx.Err() != nil {
			markCancelled(rec)
			return
		}

		rec.AddFlag(document.FlagDescriptionFailed)
		raw = "No description generated."
	}

	if entry, ok := rt.Taxonomy.Entry(rec.Confirmed); ok && violatesPolicy(raw, entry.DisallowedTerms) {
		rec.AddFlag(document.FlagPolicyViolation)
	}

	if rec.QualityNote != "" {
		raw = rec.QualityNote + "\n\n" + raw
	}

	rec.Description = raw
	rec.Status = document.StatusDescribed
}

func describePrompt(rt *Runtime, rec *document.Record) string {
	if rec.Confirmed == taxonomy.Unclassified {
		return prompts.Fallback(rec.Image, rec.QualityNote)
	}

	entry, ok := rt.Taxonomy.Entry(rec.Confirmed)
	if !ok {
		// A confirmed category outside the taxonomy gets the literal
		// fallback rather than a fabricated template.
		return prompts.Fallback(rec.Image, rec.QualityNote)
	}

	return prompts.Describe(entry, rec.Image, rec.Flagged(document.FlagMultiDiagram), rec.QualityNote)
}

// violatesPolicy reports whether the response contains any of the
// category's disallowed terms, case-insensitively.
func violatesPolicy(response string, disallowed []string) bool {
	if len(disallowed) == 0 {
		return false
	}

	lower := strings.ToLower(response)
	for _, term := range disallowed {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
