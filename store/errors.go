package store

import "errors"

var (
	// ErrInvalidAction is returned when a unit that is not an action reaches
	// the reducer.
	ErrInvalidAction = errors.New("store: unit is not an action")

	// ErrNilReducer is returned by New when no reducer is supplied.
	ErrNilReducer = errors.New("store: nil reducer")
)
