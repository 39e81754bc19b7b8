package taxonomy

import "errors"

// Configuration errors surfaced at load time. Any of these aborts the run
// before an image is processed.
var (
	ErrNoCategories       = errors.New("taxonomy declares no categories")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrDuplicateCategory  = errors.New("duplicate category")
	ErrReservedCategory   = errors.New("category name is reserved")
	ErrMissingPrompt      = errors.New("category has no description prompt")
	ErrUndeclaredCategory = errors.New("category not declared in categories")
	ErrUnsupportedFormat  = errors.New("unsupported taxonomy format")
)
