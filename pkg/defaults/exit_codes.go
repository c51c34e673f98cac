package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Report written
	ExitUserError     = 2 // Invalid arguments or configuration
	ExitInputError    = 3 // Malformed JSON or schema mismatch
	ExitRenderError   = 4 // Template, chart, or PDF failure
	ExitInternalError = 5 // Unexpected internal error
)
