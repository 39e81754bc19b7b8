package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JaimeStill/scribe/internal/taxonomy"
)

// descriptionPreview bounds the truncated description shown per summary entry.
const descriptionPreview = 240

// RunSummary is the run-wide accumulation over all diagram records: the
// per-category distribution and the hypothesis accuracy bookkeeping. It is
// built once, by folding over completed records.
type RunSummary struct {
	Total             int            `json:"total"`
	PerCategory       map[string]int `json:"per_category"`
	HypothesisMatches int            `json:"hypothesis_matches"`
	Considered        int            `json:"considered"`
	Entries           []Record       `json:"entries"`
}

// Summarize folds completed records into a RunSummary. Records that never
// reached the inference service for a resource reason are excluded from
// both the distribution and the accuracy denominator; records confirmed
// as unclassified count in the distribution but not toward accuracy.
func Summarize(records []Record) RunSummary {
	run := RunSummary{
		Total:       len(records),
		PerCategory: make(map[string]int),
		Entries:     records,
	}

	for i := range records {
		r := &records[i]
		if r.ResourceFailed() {
			continue
		}

		confirmed := r.Confirmed
		if confirmed == "" {
			confirmed = taxonomy.Unclassified
		}
		run.PerCategory[confirmed]++

		if confirmed == taxonomy.Unclassified {
			continue
		}

		run.Considered++
		if r.Hypothesis != "" && r.Hypothesis == confirmed {
			run.HypothesisMatches++
		}
	}

	return run
}

// Categories returns the categories present in the distribution, sorted.
func (s *RunSummary) Categories() []string {
	return sortedCategories(s.PerCategory)
}

// Accuracy returns the hypothesis accuracy ratio in [0, 1]. A run with no
// considered records has an accuracy of 0; that is not an error.
func (s *RunSummary) Accuracy() float64 {
	if s.Considered == 0 {
		return 0
	}
	return float64(s.HypothesisMatches) / float64(s.Considered)
}

// RenderSummary produces the summary report: total diagram count, the
// category distribution, the hypothesis accuracy, and one condensed entry
// per diagram record.
func RenderSummary(sourceName string, run RunSummary) string {
	var sb strings.Builder

	sb.WriteString("# Diagram Analysis Summary\n\n")
	fmt.Fprintf(&sb, "**Source Document:** %s\n\n", sourceName)
	fmt.Fprintf(&sb, "**Total Diagrams:** %d\n\n", run.Total)

	if len(run.PerCategory) > 0 {
		sb.WriteString("## Category Distribution\n\n")
		for _, category := range sortedCategories(run.PerCategory) {
			count := run.PerCategory[category]
			pct := float64(count) / float64(run.Total) * 100
			fmt.Fprintf(&sb, "- **%s:** %d (%.1f%%)\n", CategoryLabel(category), count, pct)
		}
		sb.WriteString("\n")
	}

	if run.Considered > 0 {
		sb.WriteString("## Hypothesis Accuracy\n\n")
		fmt.Fprintf(
			&sb, "- **Correct hypotheses:** %d/%d (%.1f%%)\n\n",
			run.HypothesisMatches, run.Considered, run.Accuracy()*100,
		)
	}

	sb.WriteString("---\n\n")

	for i := range run.Entries {
		renderEntry(&sb, i+1, &run.Entries[i])
	}

	return sb.String()
}

func renderEntry(sb *strings.Builder, ordinal int, r *Record) {
	fmt.Fprintf(sb, "## Diagram %d: %s\n\n", ordinal, baseName(r.Image.Ref.RawPath))
	fmt.Fprintf(sb, "- **Type:** %s\n", CategoryLabel(r.Confirmed))
	fmt.Fprintf(sb, "- **File:** `%s`\n", r.Image.Ref.RawPath)

	if r.Image.Context.Heading != "" {
		fmt.Fprintf(sb, "- **Section:** %s\n", r.Image.Context.Heading)
	}

	if r.Hypothesis != "" && r.Hypothesis != r.Confirmed {
		fmt.Fprintf(sb, "- **Context Hypothesis:** %s (mismatch)\n", CategoryLabel(r.Hypothesis))
	}

	if len(r.Flags) > 0 {
		flags := make([]string, len(r.Flags))
		for i, f := range r.Flags {
			flags[i] = string(f)
		}
		fmt.Fprintf(sb, "- **Flags:** %s\n", strings.Join(flags, ", "))
	}

	fmt.Fprintf(sb, "- **Description:** %s\n\n---\n\n", truncate(r.Description, descriptionPreview))
}

func sortedCategories(counts map[string]int) []string {
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

func baseName(p string) string {
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
