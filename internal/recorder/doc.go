// Package recorder runs checkout functions and appends every invocation
// to the invocation log, and replays a recorded log against the current
// functions.
//
// A Recorder owns one run token for its lifetime. All invocations made
// through it are grouped under that token, so a single CLI session or
// scenario run can be read back as one timeline.
//
// Only invocations that reached the function are recorded: the function
// produced an output, or the merchant configuration aborted it. Requests
// for an unknown function or with an undecodable input document are
// rejected before that point and leave no trace.
package recorder
