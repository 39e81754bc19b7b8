package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrScanFailed     = errors.New("document scan failed")
	ErrAnalyzeFailed  = errors.New("image analysis failed")
	ErrAssembleFailed = errors.New("document assembly failed")
)
