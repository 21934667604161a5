package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/checkoutfn/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a successful invocation record.
func createTestRecord(function, runToken, input, output string) ir.InvocationRecord {
	return ir.InvocationRecord{
		ID:            ir.MustInvocationID(function, []byte(input)),
		RunToken:      runToken,
		Function:      function,
		Input:         input,
		Output:        output,
		EngineVersion: ir.EngineVersion,
	}
}

// createFailedRecord creates an invocation record aborted by an error.
func createFailedRecord(function, runToken, input, code string) ir.InvocationRecord {
	return ir.InvocationRecord{
		ID:            ir.MustInvocationID(function, []byte(input)),
		RunToken:      runToken,
		Function:      function,
		Input:         input,
		ErrorCode:     code,
		ErrorMessage:  "configuration is malformed",
		EngineVersion: ir.EngineVersion,
	}
}
