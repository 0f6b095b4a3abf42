package utils

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/deskhive-backend/models"
)

type ContextKey int

const (
	ContextKeyCaller ContextKey = iota
	ContextKeyLogger
)

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithLogger := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctxWithLogger)
	}
}

func StoreCallerInContext(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, caller)
}

// CallerFromContext returns the caller identity set by the authentication
// middleware, or nil when the request was not authenticated.
func CallerFromContext(ctx context.Context) models.Caller {
	caller, _ := ctx.Value(ContextKeyCaller).(models.Caller)
	return caller
}
