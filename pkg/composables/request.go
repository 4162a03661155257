package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ensuredit/masterdata/pkg/constants"
)

// UseLogger returns the request-scoped logger entry from the context.
// Panics when no logger middleware ran; that is a wiring bug, not a
// runtime condition.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found in context")
	}
	return logger.(*logrus.Entry)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseRequestID returns the request id injected by the logging middleware,
// or "" outside a request scope.
func UseRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constants.RequestID).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestID, id)
}
