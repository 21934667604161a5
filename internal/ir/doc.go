// Package ir holds the record types and identity functions shared by the
// invocation store, the recorder and the harness.
//
// This package imports nothing internal.
//
// Key design constraints:
//   - Identity is content-addressed: the same function and the same input
//     document always produce the same invocation ID
//   - Hashing uses canonical JSON (sorted UTF-16 keys, strings kept byte for byte, no floats)
//   - Ordering uses logical sequence numbers, never wall-clock time
package ir
