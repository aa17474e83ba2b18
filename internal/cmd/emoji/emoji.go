// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used in status lines.
const (
	// Success marks a completed operation: a push acknowledged, an item added.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a non-fatal problem, such as a fallback value in use.
	Warning = "!"

	// Info marks neutral context.
	Info = "i"

	// Stop marks a declined or canceled operation.
	Stop = "■"

	// Bullet prefixes detail lines.
	Bullet = "•"
)
