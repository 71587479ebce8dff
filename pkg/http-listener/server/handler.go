package server

import (
	"context"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	responsehandler "github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler"
)

// DefaultEchoMaxBodySize Bodies above this size are not echoed and left to the drain.
const DefaultEchoMaxBodySize = 64 * 1024

// Handler serves one validated request.
type Handler interface {
	ServeRequest(ctx context.Context, req *request.Request, rh responsehandler.ResponseHandler)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *request.Request, rh responsehandler.ResponseHandler)

func (f HandlerFunc) ServeRequest(ctx context.Context, req *request.Request, rh responsehandler.ResponseHandler) {
	f(ctx, req, rh)
}

// EchoHandler answers with a summary of the request.
// Bodies with a known length up to maxBodySize are read and included.
// Larger or chunked bodies stay unread.
func EchoHandler(maxBodySize int64) Handler {
	return HandlerFunc(func(_ context.Context, req *request.Request, rh responsehandler.ResponseHandler) {
		body := ""

		if req.HasEntityBody() && !req.Chunked() && req.ContentLength() <= maxBodySize {
			var err error

			body, err = req.BodyString()
			if err != nil {
				rh.InternalServerError(err)

				return
			}
		}

		rh.Echo(body)
	})
}
