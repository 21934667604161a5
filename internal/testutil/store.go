// Package testutil provides helpers shared by tests across packages.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/roach88/checkoutfn/internal/store"
)

// OpenStore opens a file-backed invocation store in a temporary directory.
// The store is closed when the test ends.
func OpenStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
