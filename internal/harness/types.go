package harness

// TraceEvent is one recorded invocation in a scenario trace.
type TraceEvent struct {
	Seq      int64  `json:"seq"`
	Function string `json:"function"`

	// Output is the decoded output document; nil for aborted invocations.
	Output any `json:"output,omitempty"`

	// Error is the error code of an aborted invocation.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// RunToken is the token the scenario was recorded under.
	RunToken string `json:"run_token"`

	// Trace contains the recorded invocations in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runToken string) *Result {
	return &Result{
		Pass:     true,
		RunToken: runToken,
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
