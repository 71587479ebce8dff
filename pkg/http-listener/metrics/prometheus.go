package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type prometheusClient struct {
	registry         *prometheus.Registry
	reqCnt           *prometheus.CounterVec
	resSz            *prometheus.SummaryVec
	reqDur           *prometheus.SummaryVec
	reqSz            *prometheus.SummaryVec
	up               *prometheus.GaugeVec
	parsedRequests   *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	interimResponses prometheus.Counter
	drains           *prometheus.CounterVec
	exchangeDur      *prometheus.SummaryVec
	exchangeReqSz    *prometheus.SummaryVec
	exchangeResSz    *prometheus.SummaryVec
}

// Instrument will instrument chi routes.
func (cl *prometheusClient) Instrument(serverLabel string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Begin timer
			start := time.Now()
			// Calculate request size
			reqSz := computeApproximateRequestSize(r)

			// Next request with new response writer
			sw := statusWriter{ResponseWriter: w}
			next.ServeHTTP(&sw, r)

			// Get status as string
			status := strconv.Itoa(sw.status)
			// Calculate request time
			elapsed := float64(time.Since(start)) / float64(time.Second)
			// Get response size
			resSz := float64(sw.length)

			cl.reqDur.WithLabelValues(serverLabel, status, r.Method, r.Host, r.URL.Path).Observe(elapsed)
			cl.reqCnt.WithLabelValues(serverLabel, status, r.Method, r.Host, r.URL.Path).Inc()
			cl.reqSz.WithLabelValues(serverLabel, status, r.Method, r.Host, r.URL.Path).Observe(float64(reqSz))
			cl.resSz.WithLabelValues(serverLabel, status, r.Method, r.Host, r.URL.Path).Observe(resSz)
		})
	}
}

// GetExposeHandler Get handler to expose metrics for resquest.
func (cl *prometheusClient) GetExposeHandler() http.Handler {
	return promhttp.HandlerFor(cl.registry, promhttp.HandlerOpts{})
}

func (cl *prometheusClient) GetRegisterer() prometheus.Registerer {
	return cl.registry
}

func (cl *prometheusClient) IncParsedRequests(method, protocol string) {
	cl.parsedRequests.WithLabelValues(method, protocol).Inc()
}

func (cl *prometheusClient) IncValidationErrors(status int) {
	cl.validationErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (cl *prometheusClient) IncInterimResponses() {
	cl.interimResponses.Inc()
}

func (cl *prometheusClient) IncDrains(success bool) {
	cl.drains.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (cl *prometheusClient) ObserveExchange(status int, method string, duration time.Duration, requestSize, responseSize int64) {
	st := strconv.Itoa(status)

	cl.exchangeDur.WithLabelValues(st, method).Observe(duration.Seconds())
	cl.exchangeReqSz.WithLabelValues(st, method).Observe(float64(requestSize))
	cl.exchangeResSz.WithLabelValues(st, method).Observe(float64(responseSize))
}

func (cl *prometheusClient) register() {
	cl.registry = prometheus.NewRegistry()
	cl.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cl.reqCnt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "How many HTTP requests have been processed ?",
		},
		[]string{"server", "status_code", "method", "host", "path"},
	)
	cl.registry.MustRegister(cl.reqCnt)

	cl.reqDur = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "The HTTP request latencies in seconds.",
		},
		[]string{"server", "status_code", "method", "host", "path"},
	)
	cl.registry.MustRegister(cl.reqDur)

	cl.reqSz = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_size_bytes",
			Help: "The HTTP request sizes in bytes.",
		},
		[]string{"server", "status_code", "method", "host", "path"},
	)
	cl.registry.MustRegister(cl.reqSz)

	cl.resSz = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_response_size_bytes",
			Help: "The HTTP response sizes in bytes.",
		},
		[]string{"server", "status_code", "method", "host", "path"},
	)
	cl.registry.MustRegister(cl.resSz)

	cl.up = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "up",
			Help: "1 = up, 0 = down",
		},
		[]string{"component"},
	)
	cl.up.WithLabelValues("http-listener").Set(1)
	cl.registry.MustRegister(cl.up)

	cl.parsedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listener_parsed_requests_total",
			Help: "How many requests have a valid request line ?",
		},
		[]string{"method", "protocol"},
	)
	cl.registry.MustRegister(cl.parsedRequests)

	cl.validationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listener_validation_errors_total",
			Help: "How many requests have been rejected by validation ?",
		},
		[]string{"status_code"},
	)
	cl.registry.MustRegister(cl.validationErrors)

	cl.interimResponses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listener_interim_responses_total",
			Help: "How many 100 Continue responses have been sent ?",
		},
	)
	cl.registry.MustRegister(cl.interimResponses)

	cl.drains = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listener_body_drains_total",
			Help: "How many unread bodies have been discarded ?",
		},
		[]string{"success"},
	)
	cl.registry.MustRegister(cl.drains)

	cl.exchangeDur = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "listener_exchange_duration_seconds",
			Help: "The request/response exchange latencies in seconds.",
		},
		[]string{"status_code", "method"},
	)
	cl.registry.MustRegister(cl.exchangeDur)

	cl.exchangeReqSz = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "listener_request_size_bytes",
			Help: "The request sizes in bytes, header block included.",
		},
		[]string{"status_code", "method"},
	)
	cl.registry.MustRegister(cl.exchangeReqSz)

	cl.exchangeResSz = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "listener_response_size_bytes",
			Help: "The response sizes in bytes.",
		},
		[]string{"status_code", "method"},
	)
	cl.registry.MustRegister(cl.exchangeResSz)
}

// computeApproximateRequestSize returns an approximation of the request size on the wire.
func computeApproximateRequestSize(r *http.Request) int {
	s := 0
	if r.URL != nil {
		s += len(r.URL.String())
	}

	s += len(r.Method)
	s += len(r.Proto)

	for name, values := range r.Header {
		s += len(name)
		for _, value := range values {
			s += len(value)
		}
	}

	s += len(r.Host)

	// N.B. r.Form and r.MultipartForm are assumed to be included in r.URL.
	if r.ContentLength != -1 {
		s += int(r.ContentLength)
	}

	return s
}
