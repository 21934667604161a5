// Package store provides SQLite-backed durable storage for recorded
// function invocations.
//
// The log is append-only. Each row holds the exact input a function was
// invoked with and either its output or the error that aborted it, so a
// later replay can re-execute the input and compare.
//
// # Ordering
//
// All ordering uses the seq column (a logical clock assigned on insert),
// never timestamps. Queries that return several rows order by seq ASC so
// results are identical across runs.
//
// # Idempotency
//
// Invocation IDs are content-addressed (see ir.InvocationID). Writing the
// same invocation twice within one run is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
