// Package prompts composes the inference-service prompts for the two
// vision stages: confirming a context hypothesis against the closed
// taxonomy, and generating a category-specific technical description.
package prompts

import "slices"

// Stage represents a vision workflow stage that a prompt targets.
type Stage string

// Valid vision stages.
const (
	StageConfirm  Stage = "confirm"
	StageDescribe Stage = "describe"
)

var stages = []Stage{
	StageConfirm,
	StageDescribe,
}

// Stages returns the list of valid vision stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known vision stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
