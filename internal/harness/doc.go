// Package harness provides conformance testing for checkout functions.
//
// A scenario invokes functions with host input documents and checks each
// outcome against an expected output document or error code. Steps run
// through a recorder on a fresh in-memory invocation log, and the trace
// used for assertions and golden snapshots is read back from that log.
//
// # Scenario Format
//
//	name: payment_hides_other_method
//	description: "Selecting the configured rate hides the first other method"
//	run_token: test-run-payment
//	steps:
//	  - function: payment
//	    input:
//	      cart: { deliveryGroups: [ { selectedDeliveryOption: { title: Express } } ] }
//	      paymentMethods: [ { id: A, name: COD }, { id: B, name: PayPal } ]
//	      paymentCustomization:
//	        metafield: { value: '{"method":"COD","rate":"Express"}' }
//	    expect:
//	      output: { operations: [ { hide: { paymentMethodId: B } } ] }
//	assertions:
//	  - type: trace_count
//	    function: payment
//	    count: 1
//
// An expect clause holds either output (compared as canonical JSON) or
// error (an error code such as INVALID_CONFIGURATION). A step without an
// expect clause only has to run.
//
// # Assertion Types
//
//   - trace_contains: a recorded invocation of function, optionally with error
//   - trace_order: functions first appear in the trace in the given order
//   - trace_count: function appears exactly count times in the trace
//   - log_stats: the log's per-function totals for function
//
// # Deterministic Testing
//
// Every scenario runs under a fixed run token (run_token, or
// "test-run-default") on an isolated in-memory database, so the trace is
// byte-identical across runs and can be compared against golden files.
//
// Invocations rejected before reaching a function (unknown function,
// undecodable input) are checked against expect but are not recorded, so
// they do not appear in the trace. Repeating an identical step within a
// scenario records it once.
package harness
