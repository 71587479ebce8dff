package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Client Client metrics interface.
//
//go:generate mockgen -destination=./mocks/mock_Client.go -package=mocks github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics Client
type Client interface {
	// Will return a middleware to instrument http routers.
	Instrument(serverLabel string) func(next http.Handler) http.Handler
	// Will return a handler to expose metrics over a http server.
	GetExposeHandler() http.Handler
	// Will return the registerer used for all metrics, to share it with other libraries.
	GetRegisterer() prometheus.Registerer
	// Will increase counter of requests with a valid request line.
	IncParsedRequests(method, protocol string)
	// Will increase counter of requests rejected by validation.
	IncValidationErrors(status int)
	// Will increase counter of 100 Continue responses sent.
	IncInterimResponses()
	// Will increase counter of unread body drains.
	IncDrains(success bool)
	// Will observe a complete request/response exchange on the listener.
	ObserveExchange(status int, method string, duration time.Duration, requestSize, responseSize int64)
}

// NewClient will generate a new client instance.
func NewClient() Client {
	client := &prometheusClient{}
	// Call register to create all prometheus instances objects
	client.register()

	return client
}
