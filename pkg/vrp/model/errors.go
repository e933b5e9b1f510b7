package model

import "fmt"

// ConfigurationError is returned when a Problem or its objective configuration
// is contradictory or incomplete. It is always fatal at setup time and never
// surfaces mid-solve.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vrp: configuration error: %s", e.Reason)
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// StructuralError indicates a tour invariant was violated: a missing
// terminal, or an activity whose job reference dangles. It signals a bug in
// the engine, not bad caller input, and is never expected in a correct build.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("vrp: structural invariant violated: %s", e.Reason)
}

// NewStructuralError builds a StructuralError with a formatted reason.
func NewStructuralError(format string, args ...interface{}) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
