package log

import "context"

type ctxKey int

const loggerKey ctxKey = iota

// GetLoggerFromContext returns the request logger or nil.
func GetLoggerFromContext(ctx context.Context) Logger {
	res, _ := ctx.Value(loggerKey).(Logger)

	return res
}

func SetLoggerInContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
