package home

import "errors"

// Domain errors for the home package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, home.ErrExecutionNotFound) {
//	    // handle not found case
//	}
var (
	// ErrExecutionNotFound is returned when an execution ID does not exist.
	ErrExecutionNotFound = errors.New("home: execution not found")

	// ErrUnknownOp is returned when an operation name is not recognised.
	ErrUnknownOp = errors.New("home: unknown operation")

	// ErrInvalidStatus is returned when a status filter is not recognised.
	ErrInvalidStatus = errors.New("home: invalid status")
)
