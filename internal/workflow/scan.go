package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/document"
)

// ScanNode returns a state node that parses the source markdown into an
// ordered sequence of image references with context windows. Documents
// without images leave the analyze stage nothing to do; the graph routes
// straight to assembly and the output equals the input.
func ScanNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		source, dir, err := extractScanState(s)
		if err != nil {
			return s, fmt.Errorf("scan: %w", err)
		}

		images := document.Scan(source, dir, rt.ContextChars)

		rt.Logger.InfoContext(
			ctx, "scan node complete",
			"image_count", len(images),
		)

		s = s.Set(KeyImages, images)
		return s, nil
	})
}

func extractScanState(s state.State) (string, string, error) {
	sourceVal, ok := s.Get(KeySource)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrScanFailed, KeySource)
	}

	source, ok := sourceVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrScanFailed, KeySource)
	}

	dirVal, ok := s.Get(KeySourceDir)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrScanFailed, KeySourceDir)
	}

	dir, ok := dirVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrScanFailed, KeySourceDir)
	}

	return source, dir, nil
}
