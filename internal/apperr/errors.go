package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid event")
	ErrOverlap  = errors.New("schedule overlap")
)
