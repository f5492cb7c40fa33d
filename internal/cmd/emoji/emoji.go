// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols used in provider reports.
const (
	// Success marks configured providers.
	Success = "✓"

	// Error marks providers missing a required credential.
	Error = "✗"

	// Warning marks malformed or incomplete credentials.
	Warning = "!"

	// Optional marks providers left out of collections.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"
)
