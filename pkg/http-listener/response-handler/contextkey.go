package responsehandler

import "context"

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

var responseHandlerCtxKey = &contextKey{name: "ResponseHandlerCtxKey"}

// GetResponseHandlerFromContext will return the response handler object from context, nil when absent.
func GetResponseHandlerFromContext(ctx context.Context) ResponseHandler {
	res, _ := ctx.Value(responseHandlerCtxKey).(ResponseHandler)

	return res
}

// SetResponseHandlerInContext will set a response handler object in a context.
func SetResponseHandlerInContext(ctx context.Context, resH ResponseHandler) context.Context {
	return context.WithValue(ctx, responseHandlerCtxKey, resH)
}
