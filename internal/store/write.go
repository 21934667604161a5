package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/checkoutfn/internal/ir"
)

// WriteInvocation appends rec to the log and returns the assigned seq.
//
// Uses ON CONFLICT DO NOTHING for idempotency: a record whose ID was
// already written under the same run token is silently ignored, and
// inserted is false. rec.Seq is ignored.
func (s *Store) WriteInvocation(ctx context.Context, rec ir.InvocationRecord) (seq int64, inserted bool, err error) {
	if err := validateRecord(rec); err != nil {
		return 0, false, fmt.Errorf("write invocation: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations
		(id, run_token, function, input, output, error_code, error_message, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, id) DO NOTHING
	`,
		rec.ID,
		rec.RunToken,
		rec.Function,
		rec.Input,
		rec.Output,
		rec.ErrorCode,
		rec.ErrorMessage,
		rec.EngineVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("write invocation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("write invocation: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}

	seq, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("write invocation: %w", err)
	}
	return seq, true, nil
}

func validateRecord(rec ir.InvocationRecord) error {
	switch {
	case rec.ID == "":
		return errors.New("empty id")
	case rec.RunToken == "":
		return errors.New("empty run token")
	case rec.Function == "":
		return errors.New("empty function")
	case rec.Output != "" && rec.ErrorCode != "":
		return errors.New("record has both output and error")
	case rec.Output == "" && rec.ErrorCode == "":
		return errors.New("record has neither output nor error")
	}
	return nil
}
