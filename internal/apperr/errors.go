package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidHeading = errors.New("invalid template heading")
	ErrInvalidPath    = errors.New("invalid path")
)
