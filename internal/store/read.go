package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/checkoutfn/internal/ir"
)

const selectInvocations = `
	SELECT seq, id, run_token, function, input, output, error_code, error_message, engine_version
	FROM invocations
`

// ReadRun returns the invocations recorded under runToken, ordered by seq.
// An unknown token yields an empty slice.
func (s *Store) ReadRun(ctx context.Context, runToken string) ([]ir.InvocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectInvocations+`
		WHERE run_token = ?
		ORDER BY seq ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("read run %q: %w", runToken, err)
	}
	defer rows.Close()

	return scanInvocations(rows)
}

// ReadAll returns every invocation in the log, ordered by seq.
func (s *Store) ReadAll(ctx context.Context) ([]ir.InvocationRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectInvocations+`
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read all invocations: %w", err)
	}
	defer rows.Close()

	return scanInvocations(rows)
}

// ReadInvocation retrieves a single invocation by seq.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadInvocation(ctx context.Context, seq int64) (ir.InvocationRecord, error) {
	row := s.db.QueryRowContext(ctx, selectInvocations+`
		WHERE seq = ?
	`, seq)

	rec, err := scanInvocation(row)
	if err != nil {
		return ir.InvocationRecord{}, err
	}
	return rec, nil
}

// ListRunTokens returns all distinct run tokens in the log, in the order
// their first invocation was recorded.
func (s *Store) ListRunTokens(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token FROM invocations
		GROUP BY run_token
		ORDER BY MIN(seq) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list run tokens: %w", err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan run token: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run tokens: %w", err)
	}
	return tokens, nil
}

// FunctionStats summarizes the recorded invocations of one function.
type FunctionStats struct {
	Function string `json:"function"`
	Total    int64  `json:"total"`
	Failed   int64  `json:"failed"`
}

// CountByFunction returns per-function invocation counts, sorted by
// function name.
func (s *Store) CountByFunction(ctx context.Context) ([]FunctionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT function, COUNT(*), SUM(CASE WHEN error_code != '' THEN 1 ELSE 0 END)
		FROM invocations
		GROUP BY function
		ORDER BY function COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count by function: %w", err)
	}
	defer rows.Close()

	stats := []FunctionStats{}
	for rows.Next() {
		var st FunctionStats
		if err := rows.Scan(&st.Function, &st.Total, &st.Failed); err != nil {
			return nil, fmt.Errorf("scan function stats: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate function stats: %w", err)
	}
	return stats, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvocation(row rowScanner) (ir.InvocationRecord, error) {
	var rec ir.InvocationRecord
	err := row.Scan(
		&rec.Seq,
		&rec.ID,
		&rec.RunToken,
		&rec.Function,
		&rec.Input,
		&rec.Output,
		&rec.ErrorCode,
		&rec.ErrorMessage,
		&rec.EngineVersion,
	)
	if err != nil {
		return ir.InvocationRecord{}, err
	}
	return rec, nil
}

func scanInvocations(rows *sql.Rows) ([]ir.InvocationRecord, error) {
	records := []ir.InvocationRecord{}
	for rows.Next() {
		rec, err := scanInvocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invocations: %w", err)
	}
	return records, nil
}
