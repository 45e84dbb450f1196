package store

import (
	"github.com/caseworks/intake/internal/schema"
)

// Record is the durable snapshot of an in-progress application.
type Record struct {
	Values schema.Values `json:"values"`
	Step   int           `json:"step"`
}

// Empty reports whether the record carries nothing worth persisting.
func (r *Record) Empty() bool {
	return r == nil || (len(r.Values) == 0 && r.Step <= 1)
}

// DefaultRecord returns a blank record positioned on the first step.
func DefaultRecord() *Record {
	return &Record{
		Values: schema.Values{},
		Step:   1,
	}
}

// Store persists the application record across sessions.
type Store interface {
	// Load returns the saved record, or a default record when nothing
	// usable is stored. Corrupt data is treated as absent.
	Load() (*Record, error)

	// Save writes the record. An empty record clears the store instead,
	// so a fresh session never resurrects stale state.
	Save(*Record) error

	// Clear removes any saved record.
	Clear() error

	// Close releases resources held by the store.
	Close() error
}
