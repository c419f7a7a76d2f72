package services

import "errors"

// Domain failures returned by the services. Handlers map each of these
// onto an HTTP status; anything else is treated as an internal error.
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrDuplicateTitle    = errors.New("a project with this title already exists")
	ErrInvalidAmount     = errors.New("donation amount must be positive")
	ErrInvalidTransition = errors.New("operation not allowed in the project's current status")
	ErrDeadlinePassed    = errors.New("donation deadline has passed")
	ErrUnsupportedImage  = errors.New("unsupported image format")
)
