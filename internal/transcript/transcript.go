// Package transcript provides persistence and retrieval of breeze
// invocation records, so past runs can be listed and inspected.
package transcript

import "time"

// Record holds the captured outcome of a single breeze invocation.
type Record struct {
	ID       string        `json:"id"`
	Args     []string      `json:"args"`
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
}

// Store persists and retrieves invocation records.
type Store interface {
	Save(rec *Record) error
	Load(id string) (*Record, error)
	// List returns all records, most recent first.
	List() ([]*Record, error)
}
