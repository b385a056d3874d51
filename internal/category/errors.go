package category

import "errors"

// Domain errors. Callers branch with errors.Is; an HTTP edge would map the
// first two to 404 and the last two to 409.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrParentNotFound   = errors.New("parent category not found")
	ErrCodeTaken        = errors.New("category code already exists")
	ErrHasChildren      = errors.New("cannot delete a category with children")
)
