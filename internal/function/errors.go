package function

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes invocation errors.
type ErrorCode string

const (
	// CodeUnknownFunction indicates no function is registered under the name.
	CodeUnknownFunction ErrorCode = "UNKNOWN_FUNCTION"

	// CodeInvalidInput indicates the input document could not be decoded.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfiguration indicates the merchant configuration is malformed.
	CodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// CodeFunctionFailed indicates any other error returned by a function.
	CodeFunctionFailed ErrorCode = "FUNCTION_FAILED"

	// CodeEncodeFailed indicates the result could not be encoded.
	CodeEncodeFailed ErrorCode = "ENCODE_FAILED"
)

// Error is returned by Invoke.
type Error struct {
	Code     ErrorCode
	Function string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Function, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Function, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the ErrorCode carried by err, or "" if err is not an *Error.
func Code(err error) ErrorCode {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// IsConfigError returns true if err aborted an invocation because of a
// malformed configuration.
func IsConfigError(err error) bool {
	return Code(err) == CodeInvalidConfiguration
}
