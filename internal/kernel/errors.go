package kernel

import "errors"

var (
	// ErrInvalidParams indicates a simulation parameter outside its valid range.
	ErrInvalidParams = errors.New("kernel: invalid simulation parameters")

	// ErrUnknownParam indicates a parameter name Set does not recognise.
	ErrUnknownParam = errors.New("kernel: unknown parameter")

	// ErrSessionClosed indicates use of a session after Close.
	ErrSessionClosed = errors.New("kernel: session closed")
)
