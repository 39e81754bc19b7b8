// Package workflow implements the diagram annotation workflow for Scribe.
// It provides the per-document state graph (scan → analyze → assemble),
// the per-image pipeline stages, and the run summary accumulation.
package workflow

import (
	"time"

	"github.com/JaimeStill/scribe/internal/document"
)

// State bag keys shared across workflow nodes.
const (
	KeySource     = "source"
	KeySourceName = "source_name"
	KeySourceDir  = "source_dir"
	KeyImages     = "images"
	KeyRecords    = "records"
	KeyAnnotated  = "annotated"
	KeySummary    = "summary"
)

// Document is the input to one workflow execution: the raw markdown text,
// the directory image paths resolve against, and a display name for the
// summary report.
type Document struct {
	Name string
	Dir  string
	Text string
}

// Result is the final output from an annotation workflow execution.
type Result struct {
	Annotated   string              `json:"annotated"`
	Summary     string              `json:"summary"`
	Run         document.RunSummary `json:"run"`
	CompletedAt time.Time           `json:"completed_at"`
}
