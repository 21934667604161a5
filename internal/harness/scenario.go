package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/checkoutfn/internal/function"
)

// DefaultRunToken is used when a scenario does not name its own run token.
const DefaultRunToken = "test-run-default"

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunToken is an optional fixed run token.
	// If empty, DefaultRunToken is used.
	RunToken string `yaml:"run_token,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the invocation log after all
	// steps ran. Optional.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step invokes one function.
type Step struct {
	// Function is the registry name (discount, payment, delivery).
	Function string `yaml:"function"`

	// Input is the host input document.
	Input map[string]any `yaml:"input"`

	// Expect specifies the expected outcome.
	// If nil, no validation is performed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected outcome. Exactly one of Output and
// Error is set.
type ExpectClause struct {
	// Output is the expected output document.
	Output map[string]any `yaml:"output,omitempty"`

	// Error is the expected error code.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the invocation log.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Function names the function (trace_contains, trace_count, log_stats).
	Function string `yaml:"function,omitempty"`

	// Error restricts trace_contains to invocations aborted with this code.
	Error string `yaml:"error,omitempty"`

	// Functions is the expected order (trace_order).
	Functions []string `yaml:"functions,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Total and Failed are the expected log counts (log_stats).
	Total  int64 `yaml:"total,omitempty"`
	Failed int64 `yaml:"failed,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertLogStats      = "log_stats"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Function == "" {
			return fmt.Errorf("steps[%d]: function is required", i)
		}
		if step.Input == nil {
			return fmt.Errorf("steps[%d]: input is required (use {} for an empty document)", i)
		}
		if step.Expect != nil {
			if err := validateExpect(step.Expect); err != nil {
				return fmt.Errorf("steps[%d].expect: %w", i, err)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateExpect(e *ExpectClause) error {
	switch {
	case e.Output == nil && e.Error == "":
		return fmt.Errorf("one of output or error is required")
	case e.Output != nil && e.Error != "":
		return fmt.Errorf("output and error are mutually exclusive")
	case e.Error != "" && !knownErrorCode(e.Error):
		return fmt.Errorf("unknown error code %q", e.Error)
	}
	return nil
}

func knownErrorCode(code string) bool {
	switch function.ErrorCode(code) {
	case function.CodeUnknownFunction,
		function.CodeInvalidInput,
		function.CodeInvalidConfiguration,
		function.CodeFunctionFailed,
		function.CodeEncodeFailed:
		return true
	}
	return false
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Functions) == 0 {
			return fmt.Errorf("assertions[%d]: functions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertLogStats:
		if a.Function == "" {
			return fmt.Errorf("assertions[%d]: function is required for log_stats", index)
		}
		if a.Failed > a.Total {
			return fmt.Errorf("assertions[%d]: failed cannot exceed total for log_stats", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
