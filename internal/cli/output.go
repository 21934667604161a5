package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes. Function outcomes and verification results map to
// ExitFailure; anything that stops a command before it can judge an outcome
// maps to ExitCommandError.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // malformed configuration, failed scenarios, diverged replay
	ExitCommandError = 2 // unknown function, unreadable input, missing database
)

// Error codes for failures that are not function outcomes. Function
// failures carry their function.ErrorCode instead.
const (
	CodeNotRecordable  = "E_NOT_RECORDABLE"
	CodeRecordFailed   = "E_RECORD_FAILED"
	CodeRunNotFound    = "E_RUN_NOT_FOUND"
	CodeTestFailed     = "E_TEST_FAILED"
	CodeReplayDiverged = "E_REPLAY_DIVERGED"
)

// ExitError carries the process exit code for a command error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an ExitError with no cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError caused by err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps a command error to a process exit code: nil is
// ExitSuccess, an ExitError anywhere in the chain supplies its own code,
// and any other error is ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the JSON envelope every command writes with --format json.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"` // run token of a recorded invocation
}

// CLIError is the error member of CLIResponse.
type CLIError struct {
	Code    string `json:"code"` // function error code or one of the E_* codes
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or as CLIResponse JSON.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool // text errors include details
}

func (f *OutputFormatter) json() bool {
	return f.Format == "json"
}

// Success writes data. Text format prints it with fmt.
func (f *OutputFormatter) Success(data any) error {
	if f.json() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Document writes a JSON document produced by a function. Text format
// writes the document itself; JSON format embeds it in the envelope with
// the run token it was recorded under, if any.
func (f *OutputFormatter) Document(doc []byte, runToken string) error {
	if f.json() {
		return f.encode(CLIResponse{Status: "ok", Data: json.RawMessage(doc), TraceID: runToken})
	}
	_, err := fmt.Fprintf(f.Writer, "%s\n", doc)
	return err
}

// Error writes an error. Text format prints "Error [CODE]: message".
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.json() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	if _, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	if f.Verbose && details != nil {
		_, err := fmt.Fprintf(f.Writer, "Details: %v\n", details)
		return err
	}
	return nil
}

// Failure writes a JSON envelope that carries both a result and an error,
// for verifications that ran to completion and found problems. It writes
// nothing in text format, where commands print their own report.
func (f *OutputFormatter) Failure(data any, code, message string) error {
	if !f.json() {
		return nil
	}
	return f.encode(CLIResponse{
		Status: "error",
		Data:   data,
		Error:  &CLIError{Code: code, Message: message},
	})
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
