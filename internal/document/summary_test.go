package document_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
)

func record(hypothesis, confirmed string, flags ...document.Flag) document.Record {
	r := document.NewRecord(document.Image{})
	r.Hypothesis = hypothesis
	r.Confirmed = confirmed
	r.Status = document.StatusDescribed
	for _, f := range flags {
		r.AddFlag(f)
	}
	return r
}

func TestSummarizeEmpty(t *testing.T) {
	run := document.Summarize(nil)
	if run.Total != 0 {
		t.Errorf("Total = %d, want 0", run.Total)
	}
	if run.Accuracy() != 0 {
		t.Errorf("Accuracy = %v, want 0", run.Accuracy())
	}
}

func TestSummarizeAccuracy(t *testing.T) {
	records := []document.Record{
		record("class diagram", "class diagram"),
		record("class diagram", "sequence diagram"),
		record("", "flowchart"),
	}

	run := document.Summarize(records)

	if run.Total != 3 {
		t.Errorf("Total = %d, want 3", run.Total)
	}
	if run.Considered != 3 {
		t.Errorf("Considered = %d, want 3", run.Considered)
	}
	if run.HypothesisMatches != 1 {
		t.Errorf("HypothesisMatches = %d, want 1", run.HypothesisMatches)
	}

	acc := run.Accuracy()
	if acc < 0 || acc > 1 {
		t.Errorf("Accuracy = %v, out of [0,1]", acc)
	}
	if acc != 1.0/3.0 {
		t.Errorf("Accuracy = %v, want 1/3", acc)
	}

	if run.PerCategory["class diagram"] != 1 || run.PerCategory["sequence diagram"] != 1 || run.PerCategory["flowchart"] != 1 {
		t.Errorf("PerCategory = %v", run.PerCategory)
	}
}

func TestSummarizeExclusions(t *testing.T) {
	records := []document.Record{
		record("class diagram", "", document.FlagPathMissing),
		record("class diagram", "", document.FlagImageTooLarge),
		record("class diagram", taxonomy.Unclassified),
	}

	run := document.Summarize(records)

	if run.Total != 3 {
		t.Errorf("Total = %d, want 3", run.Total)
	}
	if run.Considered != 0 {
		t.Errorf("Considered = %d, want 0", run.Considered)
	}
	if run.Accuracy() != 0 {
		t.Errorf("Accuracy = %v, want 0", run.Accuracy())
	}

	// Resource failures stay out of the distribution; unclassified stays in.
	if run.PerCategory[taxonomy.Unclassified] != 1 {
		t.Errorf("PerCategory = %v, want one unclassified", run.PerCategory)
	}
	if len(run.PerCategory) != 1 {
		t.Errorf("PerCategory = %v, want one entry", run.PerCategory)
	}
}

func TestRenderSummary(t *testing.T) {
	records := []document.Record{
		record("class diagram", "class diagram"),
		record("sequence diagram", "class diagram", document.FlagMultiDiagram),
	}
	records[0].Image.Ref.RawPath = "images/classes.png"
	records[0].Description = "Classes and their relationships."
	records[1].Image.Ref.RawPath = "images/flow.png"
	records[1].Description = strings.Repeat("long description ", 40)

	run := document.Summarize(records)
	got := document.RenderSummary("design.md", run)

	for _, want := range []string{
		"# Diagram Analysis Summary",
		"**Source Document:** design.md",
		"**Total Diagrams:** 2",
		"## Category Distribution",
		"**Class Diagram:** 2 (100.0%)",
		"## Hypothesis Accuracy",
		"1/2 (50.0%)",
		"## Diagram 1: classes.png",
		"## Diagram 2: flow.png",
		"**Context Hypothesis:** Sequence Diagram (mismatch)",
		"**Flags:** multi_diagram",
		"...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestRenderSummaryZeroImages(t *testing.T) {
	got := document.RenderSummary("empty.md", document.Summarize(nil))
	if !strings.Contains(got, "**Total Diagrams:** 0") {
		t.Errorf("summary = %q, want total 0", got)
	}
}
