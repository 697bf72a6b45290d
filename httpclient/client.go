// Package httpclient defines the network capability the thunk resolver calls
// and ships a net/http implementation of it.
//
// The capability is a single operation, [Client.Request], taking a canonical
// [request.Request] and returning a [Response] whose Data holds the decoded
// payload. Failures are reported as *[Error]; when the server answered, the
// error carries an [ErrorResponse] with the status code and the server's own
// message, which is what error handlers key on.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/LyraHealth/auto-thunk/request"
)

var (
	// ErrStatus is wrapped by errors for non-2xx responses.
	ErrStatus = errors.New("httpclient: unexpected status")

	// ErrResponseTooLarge is wrapped when a response body exceeds
	// Config.MaxResponseBytes.
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
)

// Client is the network capability.
type Client interface {
	Request(ctx context.Context, r *request.Request) (*Response, error)
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func(ctx context.Context, r *request.Request) (*Response, error)

// Request calls f(ctx, r).
func (f ClientFunc) Request(ctx context.Context, r *request.Request) (*Response, error) {
	return f(ctx, r)
}

// Response is a successful reply.
type Response struct {
	Status int
	Header http.Header
	Data   any
}

// ErrorResponse is the server's reply to a failed request.
type ErrorResponse struct {
	Status int
	Header http.Header

	// Message is the server-supplied error message, if the body had one.
	Message string

	// Data is the decoded error body.
	Data any
}

// Error is returned for failed requests. Response is nil when no reply was
// received (connectivity failures, encoding errors).
type Error struct {
	Method   string
	URL      string
	Response *ErrorResponse
	Err      error
}

func (e *Error) Error() string {
	if e.Response != nil {
		if e.Response.Message != "" {
			return fmt.Sprintf("httpclient: %s %s: status %d: %s", e.Method, e.URL, e.Response.Status, e.Response.Message)
		}
		return fmt.Sprintf("httpclient: %s %s: status %d", e.Method, e.URL, e.Response.Status)
	}
	return fmt.Sprintf("httpclient: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ResponseOf returns the server reply carried by err, or nil when err is not
// a structured failure.
func ResponseOf(err error) *ErrorResponse {
	if e, ok := AsError(err); ok {
		return e.Response
	}
	return nil
}

// NewStatusError builds the error returned for a non-2xx reply.
func NewStatusError(method, url string, status int, message string, data any) *Error {
	return &Error{
		Method: method,
		URL:    url,
		Response: &ErrorResponse{
			Status:  status,
			Message: message,
			Data:    data,
		},
		Err: ErrStatus,
	}
}
