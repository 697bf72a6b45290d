package thunk

import (
	"context"
	"fmt"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/store"
)

// ErrorHandler runs once for every failed request. It may dispatch
// compensating transitions using spec as context. The returned error is the
// user-facing signal; nil means the handler had nothing to add.
type ErrorHandler func(ctx context.Context, err error, dispatch store.DispatchFunc, spec action.Spec) error

var statusText = map[int]string{
	400: "The request contained invalid data. Please double check the information provided and try again.",
	401: "Authorization failed for the given request. Please make sure you are logged in.",
	404: "Nothing found for the requested service",
	413: "The request your are trying to send is too large.",
	500: "The server is having issues. Please try again later.",
	503: "An error occurred in making the request. Please try again.",
	504: "The request has timed out. Please try again.",
}

// StatusText returns the default user-facing text for a status code.
func StatusText(code int) (string, bool) {
	s, ok := statusText[code]
	return s, ok
}

// DefaultErrorHandler maps a failure to a user-facing signal. Failures with
// no server reply yield ErrUnknown. Otherwise the result is a *Notice
// holding the server's message (taken from the reply body when the client
// left Message empty), else the status table text, else a generic text.
func DefaultErrorHandler(_ context.Context, err error, _ store.DispatchFunc, _ action.Spec) error {
	resp := httpclient.ResponseOf(err)
	if resp == nil {
		return ErrUnknown
	}

	msg := resp.Message
	if msg == "" {
		msg = httpclient.MessageOf(resp.Data)
	}
	if msg == "" {
		if s, ok := StatusText(resp.Status); ok {
			msg = s
		} else {
			msg = fmt.Sprintf("The request failed with status %d.", resp.Status)
		}
	}
	return &Notice{Status: resp.Status, Message: msg}
}
