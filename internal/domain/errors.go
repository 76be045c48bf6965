package domain

import "errors"

// Error kinds returned by the services. Handlers and callers match them
// with errors.Is; everything else surfaces as ErrInternal.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidState          = errors.New("invalid state for operation")
	ErrScheduleConflict      = errors.New("booking time conflicts with an existing booking")
	ErrInvalidInput          = errors.New("invalid input")
	ErrPromotionInapplicable = errors.New("promotion not applicable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInternal              = errors.New("internal error")
)
