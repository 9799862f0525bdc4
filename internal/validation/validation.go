// Package validation provides the batched error collector used by the
// seat-configuration and pathway-option validators.  Violations are
// accumulated while validation keeps running, then surfaced together
// so the caller sees every offending field in one response.
package validation

import "strings"

// Errors collects validation messages.  The zero value is ready to use.
type Errors struct {
	messages []string
}

// Add appends one violation message.
func (e *Errors) Add(msg string) {
	e.messages = append(e.messages, msg)
}

// HasErrors reports whether any violation was collected.
func (e *Errors) HasErrors() bool {
	return len(e.messages) > 0
}

// Messages returns the collected violations in insertion order.
func (e *Errors) Messages() []string {
	return e.messages
}

// Err returns nil when no violations were collected, otherwise a
// *ValidationError carrying all of them.
func (e *Errors) Err() error {
	if len(e.messages) == 0 {
		return nil
	}
	return &ValidationError{Violations: e.messages}
}

// ValidationError is the error returned to callers when one or more
// business-rule or structural violations were detected.  Handlers map
// it to HTTP 400.
type ValidationError struct {
	Violations []string
}

// Error joins every violation into one human-readable message.
func (v *ValidationError) Error() string {
	return strings.Join(v.Violations, "; ")
}
