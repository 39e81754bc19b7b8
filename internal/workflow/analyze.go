package workflow

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/scribe/internal/classifier"
	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
	"github.com/JaimeStill/scribe/internal/vision"
)

// AnalyzeNode returns a state node that runs the per-image pipeline
// (context hypothesis → visual confirmation → description) under bounded
// errgroup concurrency. Each record lands in its own preallocated slot,
// so there is no shared mutation across workers. All per-image failures
// are absorbed into record flags.
//
// runCtx is the cancellable run context; the graph hands nodes a
// detached context so assembly always runs. Inference calls derive from
// runCtx, and cancellation marks unfinished images while completed
// records survive to assembly.
func AnalyzeNode(runCtx context.Context, rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		images, err := extractImages(s)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		records := make([]document.Record, len(images))
		for i, img := range images {
			records[i] = document.NewRecord(img)
		}

		g, gctx := errgroup.WithContext(runCtx)
		g.SetLimit(workerCount(rt.Workers, len(records)))

		for i := range records {
			g.Go(func() error {
				analyzeImage(gctx, rt, &records[i])

				rt.Logger.InfoContext(
					gctx, "image analyzed",
					"position", records[i].Image.Ref.Position+1,
					"total", len(records),
					"hypothesis", records[i].Hypothesis,
					"confirmed", records[i].Confirmed,
					"status", records[i].Status,
				)
				return nil
			})
		}

		// Per-image outcomes are flags, never errors.
		_ = g.Wait()

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"image_count", len(records),
		)

		s = s.Set(KeyRecords, records)
		return s, nil
	})
}

// analyzeImage drives one image through the pipeline states. Terminal
// states are described and failed; every path reaches one of them.
func analyzeImage(ctx context.Context, rt *Runtime, rec *document.Record) {
	if rec.Image.Ref.Missing {
		rec.AddFlag(document.FlagPathMissing)
		rec.Description = fmt.Sprintf("Image file not found: `%s`", rec.Image.Ref.RawPath)
		rec.Status = document.StatusFailed
		return
	}

	hyp := classifier.Classify(rec.Image.Context, rt.Taxonomy)
	rec.Hypothesis = hyp.Category
	rec.Confidence = hyp.Confidence
	rec.Status = document.StatusHypothesized

	if ctx.Err() != nil {
		markCancelled(rec)
		return
	}

	imageURI, err := vision.LoadImage(rec.Image.Ref.Path, rt.MaxImageBytes)
	if err != nil {
		if errors.Is(err, vision.ErrImageTooLarge) {
			rec.AddFlag(document.FlagImageTooLarge)
			rec.Description = fmt.Sprintf("Image too large to analyze: `%s`", rec.Image.Ref.RawPath)
		} else {
			rec.AddFlag(document.FlagPathMissing)
			rec.Description = fmt.Sprintf("Image file could not be read: `%s`", rec.Image.Ref.RawPath)
		}
		rec.Status = document.StatusFailed
		return
	}

	Confirm(ctx, rt, rec, imageURI)
	if rec.Status.Terminal() {
		return
	}

	Describe(ctx, rt, rec, imageURI)
}

func markCancelled(rec *document.Record) {
	rec.AddFlag(document.FlagCancelled)
	rec.Status = document.StatusFailed
	if rec.Confirmed == "" {
		rec.Confirmed = taxonomy.Unclassified
	}
	if rec.Description == "" {
		rec.Description = "Processing cancelled before completion."
	}
}

func extractImages(s state.State) ([]document.Image, error) {
	val, ok := s.Get(KeyImages)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAnalyzeFailed, KeyImages)
	}

	images, ok := val.([]document.Image)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []document.Image", ErrAnalyzeFailed, KeyImages)
	}

	return images, nil
}
