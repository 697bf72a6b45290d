package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/LyraHealth/auto-thunk/store"
)

// ErrPanic is wrapped by errors produced from recovered panics.
var ErrPanic = errors.New("middleware: panic during dispatch")

// Recover returns middleware that recovers from panics further down the
// chain, including panics in reducers and thunks. Panics are converted to
// errors and logged with a stack trace.
func Recover(logger *slog.Logger) store.Middleware {
	return func(ctx context.Context, _ store.API, unit any, next store.DispatchFunc) (v any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				info := describe(unit)
				logger.Error("dispatch panicked",
					slog.String("unit_kind", info.kind),
					slog.String("unit_name", info.name),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				v = nil
				retErr = fmt.Errorf("%w: %s %s: %v", ErrPanic, info.kind, info.name, r)
			}
		}()
		return next(ctx, unit)
	}
}
