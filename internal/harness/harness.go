package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/checkoutfn/internal/function"
	"github.com/roach88/checkoutfn/internal/ir"
	"github.com/roach88/checkoutfn/internal/recorder"
	"github.com/roach88/checkoutfn/internal/store"
)

// Harness is the test execution engine for one scenario.
type Harness struct {
	store    *store.Store
	recorder *recorder.Recorder
	logger   *slog.Logger
}

// Run executes a scenario against the default function registry with
// logging suppressed.
func Run(scenario *Scenario) (*Result, error) {
	return Execute(context.Background(), function.Default(), scenario,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Execute runs a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and a recorder with a fixed run token
// 2. Invoke each step and check its expect clause
// 3. Read the trace back from the invocation log
// 4. Evaluate assertions against the trace and the log
//
// A returned error means the scenario could not be executed; failed
// expectations are reported in Result.Errors.
func Execute(ctx context.Context, registry *function.Registry, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	runToken := scenario.RunToken
	if runToken == "" {
		runToken = DefaultRunToken
	}

	h := &Harness{
		store: st,
		recorder: recorder.New(registry, st,
			recorder.WithRunToken(runToken),
			recorder.WithLogger(logger),
		),
		logger: logger.With("scenario", scenario.Name),
	}

	result := NewResult(runToken)
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	if err := h.loadTrace(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to load trace: %w", err)
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSteps invokes every step and validates expect clauses.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		input, err := json.Marshal(step.Input)
		if err != nil {
			return fmt.Errorf("step %d: failed to encode input: %w", i, err)
		}

		output, invokeErr := h.recorder.Invoke(ctx, step.Function, input)
		if invokeErr != nil && function.Code(invokeErr) == "" {
			// Not a function outcome: the log could not be written.
			return fmt.Errorf("step %d: %w", i, invokeErr)
		}

		if step.Expect != nil {
			if msg := checkExpect(step.Expect, output, invokeErr); msg != "" {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Function, msg))
			}
		}

		h.logger.Debug("step completed",
			"step", i,
			"function", step.Function,
			"error_code", function.Code(invokeErr),
		)
	}
	return nil
}

// checkExpect returns a failure message, or "" if the outcome matches.
func checkExpect(expect *ExpectClause, output []byte, invokeErr error) string {
	if expect.Error != "" {
		got := string(function.Code(invokeErr))
		if got == "" {
			return fmt.Sprintf("expected error %s, got output %s", expect.Error, output)
		}
		if got != expect.Error {
			return fmt.Sprintf("expected error %s, got %s", expect.Error, got)
		}
		return ""
	}

	if invokeErr != nil {
		return fmt.Sprintf("expected output, got error: %v", invokeErr)
	}

	want, err := canonicalExpected(expect.Output)
	if err != nil {
		return fmt.Sprintf("invalid expected output: %v", err)
	}
	got, err := ir.CanonicalizeJSON(output)
	if err != nil {
		return fmt.Sprintf("invalid output %s: %v", output, err)
	}
	if !bytes.Equal(want, got) {
		return fmt.Sprintf("output mismatch\n  expected: %s\n  actual:   %s", want, got)
	}
	return ""
}

func canonicalExpected(doc map[string]any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return ir.CanonicalizeJSON(data)
}

// loadTrace reads the recorded invocations of the run into result.Trace.
func (h *Harness) loadTrace(ctx context.Context, result *Result) error {
	records, err := h.store.ReadRun(ctx, result.RunToken)
	if err != nil {
		return err
	}

	for _, rec := range records {
		event := TraceEvent{
			Seq:      rec.Seq,
			Function: rec.Function,
			Error:    rec.ErrorCode,
		}
		if !rec.Failed() {
			output, err := ir.DecodeJSON([]byte(rec.Output))
			if err != nil {
				return fmt.Errorf("seq %d: %w", rec.Seq, err)
			}
			event.Output = output
		}
		result.Trace = append(result.Trace, event)
	}
	return nil
}
