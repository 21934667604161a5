package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/checkoutfn/internal/ir"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_SetsSchemaVersion(t *testing.T) {
	s := createTestStore(t)

	version, err := s.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	_, inserted, err := s.WriteInvocation(context.Background(),
		createTestRecord("discount", "run-1", `{}`, `{"discounts":[]}`))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}

func TestWriteInvocation_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, ok1, err := s.WriteInvocation(ctx, createTestRecord("discount", "run-1", `{"a":1}`, `{}`))
	require.NoError(t, err)
	seq2, ok2, err := s.WriteInvocation(ctx, createTestRecord("discount", "run-1", `{"a":2}`, `{}`))
	require.NoError(t, err)

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Less(t, seq1, seq2)
}

func TestWriteInvocation_DuplicateIgnored(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := createTestRecord("payment", "run-1", `{"paymentMethods":[]}`, `{"operations":[]}`)

	_, inserted, err := s.WriteInvocation(ctx, rec)
	require.NoError(t, err)
	require.True(t, inserted)

	seq, inserted, err := s.WriteInvocation(ctx, rec)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, seq)

	records, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteInvocation_SameInputDifferentRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, ok, err := s.WriteInvocation(ctx, createTestRecord("payment", "run-1", `{}`, `{"operations":[]}`))
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = s.WriteInvocation(ctx, createTestRecord("payment", "run-2", `{}`, `{"operations":[]}`))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteInvocation_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ir.InvocationRecord)
	}{
		{"empty id", func(r *ir.InvocationRecord) { r.ID = "" }},
		{"empty run token", func(r *ir.InvocationRecord) { r.RunToken = "" }},
		{"empty function", func(r *ir.InvocationRecord) { r.Function = "" }},
		{"output and error", func(r *ir.InvocationRecord) { r.ErrorCode = "INVALID_CONFIGURATION" }},
		{"neither output nor error", func(r *ir.InvocationRecord) { r.Output = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := createTestRecord("delivery", "run-1", `{}`, `{"operations":[]}`)
			tt.mutate(&rec)
			_, _, err := s.WriteInvocation(ctx, rec)
			assert.Error(t, err)
		})
	}
}

func TestReadRun_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inputs := []string{`{"n":3}`, `{"n":1}`, `{"n":2}`}
	for _, in := range inputs {
		_, _, err := s.WriteInvocation(ctx, createTestRecord("discount", "run-a", in, `{}`))
		require.NoError(t, err)
	}
	_, _, err := s.WriteInvocation(ctx, createTestRecord("discount", "run-b", `{"n":9}`, `{}`))
	require.NoError(t, err)

	records, err := s.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, inputs[i], rec.Input)
		assert.Equal(t, "run-a", rec.RunToken)
		if i > 0 {
			assert.Greater(t, rec.Seq, records[i-1].Seq)
		}
	}
}

func TestReadRun_UnknownToken(t *testing.T) {
	s := createTestStore(t)

	records, err := s.ReadRun(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadInvocation_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := createFailedRecord("payment", "run-1", `{"paymentCustomization":{"metafield":{"value":"nope"}}}`, "INVALID_CONFIGURATION")
	seq, _, err := s.WriteInvocation(ctx, want)
	require.NoError(t, err)

	got, err := s.ReadInvocation(ctx, seq)
	require.NoError(t, err)

	want.Seq = seq
	assert.Equal(t, want, got)
	assert.True(t, got.Failed())
}

func TestReadInvocation_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadInvocation(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReadAll_AcrossRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.WriteInvocation(ctx, createTestRecord("discount", "run-2", `{}`, `{}`))
	require.NoError(t, err)
	_, _, err = s.WriteInvocation(ctx, createTestRecord("payment", "run-1", `{}`, `{}`))
	require.NoError(t, err)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-2", records[0].RunToken)
	assert.Equal(t, "run-1", records[1].RunToken)
}

func TestListRunTokens_FirstSeenOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, token := range []string{"zeta", "alpha", "zeta", "mid"} {
		input := []byte{'{', '"', 'i', '"', ':', byte('0' + i), '}'}
		_, _, err := s.WriteInvocation(ctx, createTestRecord("delivery", token, string(input), `{}`))
		require.NoError(t, err)
	}

	tokens, err := s.ListRunTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tokens)
}

func TestListRunTokens_Empty(t *testing.T) {
	s := createTestStore(t)

	tokens, err := s.ListRunTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, tokens)
}

func TestCountByFunction(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	records := []ir.InvocationRecord{
		createTestRecord("payment", "run-1", `{"i":1}`, `{}`),
		createFailedRecord("payment", "run-1", `{"i":2}`, "INVALID_CONFIGURATION"),
		createTestRecord("discount", "run-1", `{"i":3}`, `{}`),
	}
	for _, rec := range records {
		_, _, err := s.WriteInvocation(ctx, rec)
		require.NoError(t, err)
	}

	stats, err := s.CountByFunction(ctx)
	require.NoError(t, err)
	assert.Equal(t, []FunctionStats{
		{Function: "discount", Total: 1, Failed: 0},
		{Function: "payment", Total: 2, Failed: 1},
	}, stats)
}
