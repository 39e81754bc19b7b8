package workflow

import (
	"log/slog"

	"github.com/JaimeStill/scribe/internal/taxonomy"
	"github.com/JaimeStill/scribe/internal/vision"
)

// Runtime bundles the dependencies that workflow nodes require. It is
// constructed by the composition code in cmd from the finalized config.
type Runtime struct {
	Vision   vision.Client
	Taxonomy *taxonomy.Table
	Logger   *slog.Logger

	// ContextChars bounds the context window captured around each image.
	ContextChars int

	// MaxImageBytes caps the image file size sent to the inference
	// service; 0 disables the cap.
	MaxImageBytes int64

	// ConfidenceThreshold is the minimum hypothesis confidence required
	// for confirmation to fall back to the hypothesis instead of the
	// reserved unclassified category.
	ConfidenceThreshold float64

	// Workers bounds per-image concurrency in the analyze stage; 0 means
	// one worker per CPU, capped at the image count.
	Workers int
}
