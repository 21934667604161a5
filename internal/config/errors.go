package config

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every error returned from Parse.
var ErrMalformed = errors.New("malformed configuration")

// Error describes why a configuration value could not be decoded.
type Error struct {
	// Schema is the name of the schema the value was parsed against.
	Schema string

	// Field is the offending field, empty when the document itself is invalid.
	Field string

	// Message is a human-readable description.
	Message string

	// Err is the underlying decoder or CUE error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("config %s: field %q: %s", e.Schema, e.Field, msg)
	}
	return fmt.Sprintf("config %s: %s", e.Schema, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformed as a match so callers can test with errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrMalformed
}

// IsMalformed returns true if err is, or wraps, a configuration parse error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
