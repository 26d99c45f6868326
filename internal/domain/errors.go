package domain

import "errors"

// Error kinds raised by the registries. Callers match them with errors.Is;
// the wrapped message carries the human-readable reason.
var (
	ErrNotFound         = errors.New("not found")
	ErrIllegalOperation = errors.New("illegal operation")
	ErrCommunication    = errors.New("provider service communication failed")
)
