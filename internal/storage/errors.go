// Package storage holds what every store backend shares: the sentinel errors
// repositories translate driver failures into, and the goose migration
// helpers for the SQL backends.
package storage

import "errors"

var (
	// ErrNotFound means no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict means a conditional write matched no row although the
	// record exists, i.e. its state changed underneath the caller.
	ErrConflict = errors.New("conflicting update")
	// ErrJobNotFound means a bid referenced a job id with no job.
	ErrJobNotFound = errors.New("referenced job not found")
)
