package extractor

import (
	"context"

	"html-extract-go/pkg/models"
)

// Stage represents the current stage of an extraction
type Stage string

const (
	StageLaunch   Stage = "launch"
	StageNavigate Stage = "navigate"
	StageLocate   Stage = "locate"
	StageRead     Stage = "read"
	StageComplete Stage = "complete"
)

// ProgressFunc is called when an extraction moves to a new stage.
// It may be nil.
type ProgressFunc func(stage Stage, message string)

func (f ProgressFunc) report(stage Stage, message string) {
	if f != nil {
		f(stage, message)
	}
}

// Extractor loads a page and returns the outer HTML of one element.
// Implementations release every process they start before returning,
// whether the extraction succeeded or not.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, req models.ExtractionRequest, progress ProgressFunc) (string, error)
}
