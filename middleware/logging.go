package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/LyraHealth/auto-thunk/store"
)

// Logging returns middleware that logs dispatch start and completion.
func Logging(logger *slog.Logger) store.Middleware {
	return func(ctx context.Context, _ store.API, unit any, next store.DispatchFunc) (any, error) {
		info := describe(unit)
		logger.Info("dispatch started",
			slog.String("unit_kind", info.kind),
			slog.String("unit_name", info.name),
		)

		start := time.Now()
		v, err := next(ctx, unit)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("dispatch failed",
				slog.String("unit_kind", info.kind),
				slog.String("unit_name", info.name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("dispatch completed",
				slog.String("unit_kind", info.kind),
				slog.String("unit_name", info.name),
				slog.Duration("elapsed", elapsed),
			)
		}

		return v, err
	}
}
