package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/document"
)

// AssembleNode returns a state node that renders the annotated document
// and the summary report from the completed records. Non-image content is
// preserved byte-for-byte; a document with no images reproduces its input
// verbatim.
func AssembleNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		source, name, err := extractAssembleState(s)
		if err != nil {
			return s, fmt.Errorf("assemble: %w", err)
		}

		records, err := extractRecords(s)
		if err != nil {
			// The analyze stage was skipped: no images, nothing recorded.
			records = nil
			s = s.Set(KeyRecords, records)
		}

		run := document.Summarize(records)

		rt.Logger.InfoContext(
			ctx, "assemble node complete",
			"total", run.Total,
			"considered", run.Considered,
			"accuracy", run.Accuracy(),
		)

		s = s.Set(KeyAnnotated, document.Assemble(source, records))
		s = s.Set(KeySummary, document.RenderSummary(name, run))
		return s, nil
	})
}

func extractAssembleState(s state.State) (string, string, error) {
	sourceVal, ok := s.Get(KeySource)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrAssembleFailed, KeySource)
	}

	source, ok := sourceVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrAssembleFailed, KeySource)
	}

	nameVal, ok := s.Get(KeySourceName)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrAssembleFailed, KeySourceName)
	}

	name, ok := nameVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrAssembleFailed, KeySourceName)
	}

	return source, name, nil
}
