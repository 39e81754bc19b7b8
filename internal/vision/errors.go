package vision

import "errors"

// ErrImageTooLarge is returned when an image exceeds the configured size
// cap. The pipeline treats it as a per-image resource condition, not a
// run failure.
var ErrImageTooLarge = errors.New("image too large")
