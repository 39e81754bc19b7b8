package workflow

import (
	"context"
	"fmt"
	"runtime"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/document"
)

// Execute runs the annotation workflow for a single document. It builds
// the state graph (scan → analyze → assemble, with analyze skipped for
// documents without images), executes it, and extracts the Result from
// the final state. Per-image failures never abort the run.
//
// The graph itself runs detached from ctx: the graph executor aborts
// between nodes once the context is cancelled, which would discard every
// completed record before assembly. Only the analyze stage observes ctx,
// stopping inference calls and marking unfinished images cancelled, so a
// cancelled run still assembles its partial results into a summary.
func Execute(ctx context.Context, rt *Runtime, doc Document) (*Result, error) {
	graph, err := buildGraph(ctx, rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeySource, doc.Text)
	initialState = initialState.Set(KeySourceName, doc.Name)
	initialState = initialState.Set(KeySourceDir, doc.Dir)

	finalState, err := graph.Execute(context.WithoutCancel(ctx), initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(runCtx context.Context, rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("scribe-annotate")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("scan", ScanNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("analyze", AnalyzeNode(runCtx, rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("assemble", AssembleNode(rt)); err != nil {
		return nil, err
	}

	// scan → analyze (when the document contains images)
	if err := graph.AddEdge("scan", "analyze", hasImages); err != nil {
		return nil, err
	}

	// scan → assemble (nothing to analyze)
	if err := graph.AddEdge("scan", "assemble", state.Not(hasImages)); err != nil {
		return nil, err
	}

	// analyze → assemble (unconditional)
	if err := graph.AddEdge("analyze", "assemble", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("scan"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("assemble"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	annotatedVal, ok := s.Get(KeyAnnotated)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyAnnotated)
	}

	annotated, ok := annotatedVal.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeyAnnotated)
	}

	summaryVal, ok := s.Get(KeySummary)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeySummary)
	}

	summary, ok := summaryVal.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeySummary)
	}

	records, _ := extractRecords(s)

	return &Result{
		Annotated:   annotated,
		Summary:     summary,
		Run:         document.Summarize(records),
		CompletedAt: time.Now(),
	}, nil
}

func extractRecords(s state.State) ([]document.Record, error) {
	val, ok := s.Get(KeyRecords)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAssembleFailed, KeyRecords)
	}

	records, ok := val.([]document.Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []document.Record", ErrAssembleFailed, KeyRecords)
	}

	return records, nil
}

func hasImages(s state.State) bool {
	val, ok := s.Get(KeyImages)
	if !ok {
		return false
	}

	images, ok := val.([]document.Image)
	return ok && len(images) > 0
}

func workerCount(configured, imageCount int) int {
	limit := runtime.NumCPU()
	if configured > 0 {
		limit = configured
	}
	return max(min(limit, imageCount), 1)
}
