package apperror

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrColumnFull        = errors.New("column is full")
	ErrGameOver          = errors.New("game is already finished")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNothingToReport   = errors.New("nothing to report")
	ErrRateLimited       = errors.New("rate limited")
)
