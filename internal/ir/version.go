package ir

// Version constants recorded with every invocation.
const (
	// SchemaVersion is the invocation record schema version.
	SchemaVersion = "1"

	// EngineVersion is the checkoutfn version.
	EngineVersion = "0.1.0"
)
