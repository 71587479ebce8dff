package responsehandler

import (
	"context"
	"net/http"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
)

// ResponseHandler will handle responses.
//
//go:generate mockgen -destination=./mocks/mock_ResponseHandler.go -package=mocks github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler ResponseHandler
type ResponseHandler interface {
	// Echo will answer with the summary of the parsed request.
	// Body is the content read by the caller, empty when it was left unread.
	Echo(body string)
	// ValidationError will answer with the status carried by the validation error.
	ValidationError(err *request.ValidationError)
	// InternalServerError will answer for internal server error.
	InternalServerError(err error)
	// GetRequest will return the actual request object.
	GetRequest() *request.Request
}

// NewHandler will return a new response handler object.
func NewHandler(ctx context.Context, req *request.Request, res http.ResponseWriter, cfgManager config.Manager) ResponseHandler {
	return &handler{
		ctx:            ctx,
		req:            req,
		res:            res,
		cfgManager:     cfgManager,
		headAnswerMode: req.Method() == http.MethodHead,
	}
}
