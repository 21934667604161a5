package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/checkoutfn/internal/function"
	"github.com/roach88/checkoutfn/internal/ir"
	"github.com/roach88/checkoutfn/internal/store"
)

// ErrNotRecordable is returned when an input document has no canonical
// form (it carries a fractional number), so no invocation ID exists for it.
var ErrNotRecordable = errors.New("input cannot be recorded")

// Recorder invokes functions and records each invocation.
type Recorder struct {
	registry *function.Registry
	store    *store.Store
	runToken string
	logger   *slog.Logger
}

// Option configures a Recorder.
type Option func(*recorderOptions)

type recorderOptions struct {
	tokens   TokenGenerator
	runToken string
	logger   *slog.Logger
}

// WithTokenGenerator sets the generator the run token is drawn from.
// Default: UUIDv7Generator.
func WithTokenGenerator(gen TokenGenerator) Option {
	return func(o *recorderOptions) { o.tokens = gen }
}

// WithRunToken records under an explicit token, e.g. to append to an
// existing run. Takes precedence over WithTokenGenerator.
func WithRunToken(token string) Option {
	return func(o *recorderOptions) { o.runToken = token }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *recorderOptions) { o.logger = logger }
}

// New creates a Recorder writing to st.
func New(registry *function.Registry, st *store.Store, opts ...Option) *Recorder {
	o := recorderOptions{tokens: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	token := o.runToken
	if token == "" {
		token = o.tokens.Generate()
	}

	return &Recorder{
		registry: registry,
		store:    st,
		runToken: token,
		logger:   o.logger.With("run_token", token),
	}
}

// RunToken returns the token this recorder records under.
func (r *Recorder) RunToken() string {
	return r.runToken
}

// Invoke runs the named function on input and appends the invocation to
// the log. The returned output and error are those of the function; a
// failure to record is returned as an error even when the function
// succeeded.
func (r *Recorder) Invoke(ctx context.Context, name string, input []byte) ([]byte, error) {
	if _, ok := r.registry.Lookup(name); !ok {
		return nil, &function.Error{Code: function.CodeUnknownFunction, Function: name}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, input); err != nil {
		return nil, &function.Error{Code: function.CodeInvalidInput, Function: name, Err: err}
	}

	id, err := ir.InvocationID(name, compact.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRecordable, err)
	}

	output, invokeErr := r.registry.Invoke(name, compact.Bytes())
	if invokeErr != nil && !recordable(invokeErr) {
		return nil, invokeErr
	}

	rec := ir.InvocationRecord{
		ID:            id,
		RunToken:      r.runToken,
		Function:      name,
		Input:         compact.String(),
		Output:        string(output),
		EngineVersion: ir.EngineVersion,
	}
	if invokeErr != nil {
		rec.Output = ""
		rec.ErrorCode = string(function.Code(invokeErr))
		rec.ErrorMessage = invokeErr.Error()
	}

	seq, inserted, err := r.store.WriteInvocation(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("record %s invocation: %w", name, err)
	}

	if inserted {
		r.logger.Debug("invocation recorded",
			"seq", seq,
			"function", name,
			"id", id,
			"error_code", rec.ErrorCode,
		)
	} else {
		r.logger.Debug("invocation already recorded, skipping",
			"function", name,
			"id", id,
		)
	}

	return output, invokeErr
}

// recordable reports whether err was produced by the function itself
// rather than by rejecting the request.
func recordable(err error) bool {
	switch function.Code(err) {
	case function.CodeUnknownFunction, function.CodeInvalidInput:
		return false
	}
	return true
}
