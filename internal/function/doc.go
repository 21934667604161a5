// Package function exposes the checkout functions behind a byte-level
// contract: the host hands over one JSON input document and receives one
// JSON output document.
//
// Every function is registered under a stable name:
//
//	reg := function.Default()
//	out, err := reg.Invoke("payment", input)
//
// A malformed merchant configuration aborts the invocation with an *Error
// whose Code is CodeInvalidConfiguration; no output is produced and callers
// must not substitute one. Missing optional input data is never an error.
package function
