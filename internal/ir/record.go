package ir

// InvocationRecord is one recorded function invocation.
//
// Input and Output hold the exact documents exchanged with the function
// (compacted), so replaying Input reproduces the original invocation. An
// invocation aborted by an error has an empty Output and a non-empty
// ErrorCode.
type InvocationRecord struct {
	// Seq is the logical position in the log, assigned by the store.
	Seq int64 `json:"seq"`

	// ID is the content-addressed identity, see InvocationID.
	ID string `json:"id"`

	// RunToken groups the invocations of one recording session.
	RunToken string `json:"run_token"`

	Function      string `json:"function"`
	Input         string `json:"input"`
	Output        string `json:"output,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	EngineVersion string `json:"engine_version"`
}

// Failed reports whether the invocation was aborted.
func (r InvocationRecord) Failed() bool {
	return r.ErrorCode != ""
}
