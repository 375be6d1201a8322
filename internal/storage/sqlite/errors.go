package sqlite

import "errors"

var (
	// ErrInvalidRecord indicates an application record missing required fields.
	ErrInvalidRecord = errors.New("invalid application record")
	// ErrRecordNotFound indicates that a record cannot be found.
	ErrRecordNotFound = errors.New("application record not found")
)
