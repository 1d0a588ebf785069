// Package types provides shared types used across the gradecast codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// ValidationError represents a problem found in a gradebook file.
type ValidationError struct {
	File     string `json:"file"`
	Path     string `json:"path,omitempty"` // location inside the gradebook, e.g. courses[0].assignments[1]
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
	Source   string `json:"source"`   // schema, consistency, parse
	Line     int    `json:"line,omitempty"`
}

// Rule source constants.
const (
	SourceSchema      = "schema"      // CUE gradebook schema
	SourceConsistency = "consistency" // cross-field checks the schema cannot express
	SourceParse       = "parse"       // the file could not be decoded
)

// Severity level constants.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SeverityRank orders severities so that fail-on thresholds can be compared.
// Unknown severities rank below warnings.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}
