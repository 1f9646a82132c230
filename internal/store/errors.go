package store

import "errors"

var (
	// ErrQuotaExceeded is returned when a write would grow a collection file
	// past its byte quota. Nothing is written in that case.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrNotFound is returned when a record id is not in a collection.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupportedSchema is returned for snapshots written by a newer or
	// unknown schema version.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)
