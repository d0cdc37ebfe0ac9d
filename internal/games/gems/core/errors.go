package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the family of configuration errors. ValidationError and
// ErrRetriesExhausted both match it with errors.Is.
var ErrInvalidConfig = errors.New("core: invalid level configuration")

// ErrRetriesExhausted means fill or refill could not find a non-matching type
// within the retry cap, e.g. a distribution with a single non-zero type.
var ErrRetriesExhausted = fmt.Errorf("core: fill retries exhausted: %w", ErrInvalidConfig)

// Caller contract violations. These are programmer errors, never game outcomes.
var (
	ErrNotCreated  = errors.New("core: board not created")
	ErrBusy        = errors.New("core: board is resolving a move")
	ErrFailed      = errors.New("core: board failed, reset required")
	ErrOutOfBounds = errors.New("core: position out of bounds")
	ErrInvalidCell = errors.New("core: position is not a playable cell")
	ErrEmptyCell   = errors.New("core: position holds no piece")
	ErrNotAdjacent = errors.New("core: positions are not orthogonally adjacent")
	ErrRunaway     = errors.New("core: cascade did not settle")
)

// ValidationError contains details about a configuration failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match validation failures.
func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
