package thunk

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHTTPClient is returned when the resolver is configured without a
	// network capability.
	ErrNoHTTPClient = errors.New("thunk: an http client is required to make requests")

	// ErrUnknown is the default handler's signal for failures that carry no
	// server reply.
	ErrUnknown error = &Notice{Message: "An unknown error has occurred"}

	// ErrInvalidDescriptor is returned when a descriptor cannot be decoded
	// or its request cannot be normalized.
	ErrInvalidDescriptor = errors.New("thunk: invalid descriptor")
)

// Notice is the default handler's signal for a failure the server answered.
// Message is user-facing text.
type Notice struct {
	Status  int
	Message string
}

func (n *Notice) Error() string { return n.Message }

// Failure is the rejection returned to the caller of Dispatch when a
// synthesized thunk's request fails. Err is the error reported by the HTTP
// client; Signal is whatever the error handler returned, and may be nil.
//
// errors.Is and errors.As see through to both.
type Failure struct {
	Err    error
	Signal error
}

// Error prefers the handler's signal, which is the user-facing text.
func (f *Failure) Error() string {
	switch {
	case f.Signal != nil:
		return f.Signal.Error()
	case f.Err != nil:
		return f.Err.Error()
	default:
		return "thunk: request failed"
	}
}

func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if f.Signal != nil {
		errs = append(errs, f.Signal)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// Message returns the user-facing text of err: the signal of a *Failure when
// it has one, the text of err otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Error()
	}
	return err.Error()
}

func invalidDescriptor(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
}
