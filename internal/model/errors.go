package model

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure raised while building
// scenarios, setups and simulation configs.
var ErrInvalid = errors.New("invalid model")

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError carries a human-readable reason and matches ErrInvalid.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Is reports ErrInvalid as the sentinel for all validation errors.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
