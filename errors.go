package autothunk

import (
	"errors"

	"github.com/LyraHealth/auto-thunk/store"
	"github.com/LyraHealth/auto-thunk/thunk"
)

var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("autothunk: invalid configuration")
	ErrNoHTTPClient  = thunk.ErrNoHTTPClient

	// Dispatch errors.
	ErrInvalidAction     = store.ErrInvalidAction
	ErrInvalidDescriptor = thunk.ErrInvalidDescriptor
	ErrUnknown           = thunk.ErrUnknown
)
