package record

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no record matches the requested roll.
	ErrNotFound = errors.New("student record not found")

	// ErrDuplicateRoll is returned when a record with the same roll already
	// exists.
	ErrDuplicateRoll = errors.New("student record already exists")

	// ErrInvalidRecord is returned for records that fail validation.
	ErrInvalidRecord = errors.New("invalid student record")

	// ErrMalformedRecord is returned by stores that refuse to load a backing
	// file containing lines that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed student record")
)

// Store owns the canonical collection of student records. Order is insertion
// order and survives a reload from durable storage.
type Store interface {
	// Add appends a new record.
	//
	// Returns ErrDuplicateRoll if a record with the same roll exists and an
	// error wrapping ErrInvalidRecord if the record fails validation.
	Add(record *Record) error

	// Update replaces the name and score of the record with the given roll.
	// The roll itself is never replaced.
	//
	// Returns ErrNotFound if no record exists.
	Update(roll string, name string, score float64) error

	// Delete removes the record with the given roll.
	//
	// Returns ErrNotFound if no record exists.
	Delete(roll string) error

	// Get finds the record with exactly the given roll.
	//
	// Returns ErrNotFound if no record is found.
	Get(roll string) (*Record, error)

	// Search returns all records whose roll or name contains query,
	// case-insensitively, in store order. The match is re-evaluated on every
	// call.
	Search(query string) []*Record

	// All returns a snapshot of every record in store order. Mutating the
	// returned records does not affect the store.
	All() []*Record
}
