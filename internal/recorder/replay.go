package recorder

import (
	"context"
	"fmt"

	"github.com/roach88/checkoutfn/internal/function"
	"github.com/roach88/checkoutfn/internal/ir"
)

// Divergence describes a recorded invocation whose re-execution produced a
// different outcome. Outcomes are output documents, or "error: CODE" for
// aborted invocations.
type Divergence struct {
	Seq      int64  `json:"seq"`
	ID       string `json:"id"`
	RunToken string `json:"run_token"`
	Function string `json:"function"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Checked     int          `json:"checked"`
	Divergences []Divergence `json:"divergences"`
}

// OK reports whether every replayed invocation matched its record.
func (r ReplayResult) OK() bool {
	return len(r.Divergences) == 0
}

// Replay re-executes every record with registry, in order, and compares
// the outcome with what was recorded. Output documents must match byte for
// byte. Aborted invocations must abort again with the same error code.
//
// Replay writes nothing. It stops early only if ctx is cancelled.
func Replay(ctx context.Context, registry *function.Registry, records []ir.InvocationRecord) (ReplayResult, error) {
	result := ReplayResult{Divergences: []Divergence{}}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("replay cancelled after %d invocations: %w", result.Checked, err)
		}

		output, err := registry.Invoke(rec.Function, []byte(rec.Input))
		recorded := outcome(rec.Output, rec.ErrorCode)
		replayed := outcome(string(output), string(function.Code(err)))
		if err != nil && function.Code(err) == "" {
			replayed = "error: " + err.Error()
		}

		result.Checked++
		if recorded != replayed {
			result.Divergences = append(result.Divergences, Divergence{
				Seq:      rec.Seq,
				ID:       rec.ID,
				RunToken: rec.RunToken,
				Function: rec.Function,
				Recorded: recorded,
				Replayed: replayed,
			})
		}
	}

	return result, nil
}

func outcome(output, errorCode string) string {
	if errorCode != "" {
		return "error: " + errorCode
	}
	return output
}
