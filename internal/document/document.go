// Package document implements the markdown document domain for Scribe.
// It provides the scanner that locates embedded images with their context
// windows, the per-image diagram records accumulated by the pipeline, and
// the assembler that produces the annotated document and summary report.
package document

import (
	"slices"

	"github.com/google/uuid"
)

// Status tracks an image through the annotation pipeline. Described and
// Failed are terminal.
type Status string

// Pipeline states for a single image.
const (
	StatusDetected     Status = "detected"
	StatusHypothesized Status = "context_hypothesized"
	StatusConfirmed    Status = "visually_confirmed"
	StatusDescribed    Status = "described"
	StatusFailed       Status = "failed"
)

// Terminal reports whether the status is a terminal pipeline state.
func (s Status) Terminal() bool {
	return s == StatusDescribed || s == StatusFailed
}

// Flag marks a per-image condition recorded during processing. Flags are
// never errors; they annotate the record and surface in the summary.
type Flag string

// Per-image condition flags.
const (
	FlagPathMissing        Flag = "path_missing"
	FlagImageTooLarge      Flag = "image_too_large"
	FlagMultiDiagram       Flag = "multi_diagram"
	FlagConfirmationFailed Flag = "confirmation_failed"
	FlagDescriptionFailed  Flag = "description_failed"
	FlagPolicyViolation    Flag = "policy_violation"
	FlagCancelled          Flag = "cancelled"
)

// Ref locates one markdown image reference within its source document.
// Start and End are byte offsets of the raw markup span.
type Ref struct {
	Path      string `json:"path"`
	RawPath   string `json:"raw_path"`
	AltText   string `json:"alt_text"`
	Position  int    `json:"position"`
	RawMarkup string `json:"raw_markup"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Missing   bool   `json:"missing"`
	SizeBytes int64  `json:"size_bytes"`
}

// Window is the bounded text surrounding an image reference, used for the
// pre-visual category hypothesis and for prompt context.
type Window struct {
	Preceding string `json:"preceding"`
	Following string `json:"following"`
	Heading   string `json:"heading"`
}

// Image pairs one image reference with its derived context window.
type Image struct {
	Ref     Ref    `json:"ref"`
	Context Window `json:"context"`
}

// Record is the complete per-image outcome: the reference, the context
// hypothesis, the confirmed category, the generated description, and any
// condition flags. The hypothesis fields are written once by the context
// classifier and never rewritten; confirmation history is preserved for
// accuracy tracking.
type Record struct {
	ID          uuid.UUID `json:"id"`
	Image       Image     `json:"image"`
	Hypothesis  string    `json:"hypothesis,omitempty"`
	Confidence  float64   `json:"confidence"`
	Confirmed   string    `json:"confirmed"`
	QualityNote string    `json:"quality_note,omitempty"`
	Stereotypes []string  `json:"stereotypes,omitempty"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Flags       []Flag    `json:"flags,omitempty"`
}

// NewRecord creates a record in the detected state for a scanned image.
func NewRecord(img Image) Record {
	return Record{
		ID:     uuid.New(),
		Image:  img,
		Status: StatusDetected,
	}
}

// AddFlag records a condition flag, ignoring duplicates.
func (r *Record) AddFlag(f Flag) {
	if !slices.Contains(r.Flags, f) {
		r.Flags = append(r.Flags, f)
	}
}

// Flagged reports whether the record carries the given flag.
func (r *Record) Flagged(f Flag) bool {
	return slices.Contains(r.Flags, f)
}

// ResourceFailed reports whether the image never reached the inference
// service for a resource reason (missing file, oversize image). Such
// records are excluded from the accuracy denominator.
func (r *Record) ResourceFailed() bool {
	return r.Flagged(FlagPathMissing) || r.Flagged(FlagImageTooLarge)
}
