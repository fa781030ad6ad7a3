package todo

import "errors"

// Sentinel errors for the whole library. Lower layers wrap these with
// context via fmt.Errorf("%w: ...") and callers match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate identifier")
	ErrNotFound     = errors.New("not found")
	ErrListNotEmpty = errors.New("list not empty")
	ErrStorage      = errors.New("storage failure")
)
