package request

import (
	"context"
	"crypto/x509"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"emperror.dev/errors"
	"github.com/google/uuid"
	"golang.org/x/text/encoding"
)

// DefaultDrainBufferSize Default size of the buffer used to discard an unread body.
const DefaultDrainBufferSize = 2048

// DefaultDrainReadTimeout Default time given to each read while discarding an unread body.
const DefaultDrainReadTimeout = 100 * time.Millisecond

// Connection is what a request needs from the underlying transport.
type Connection interface {
	// Is the peer on the local machine
	IsLocal() bool
	// Is the transport encrypted
	IsSecure() bool
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
	// Open a body reader bounded by the content length or the chunked framing
	RequestStream(contentLength int64, chunked bool) io.ReadCloser
	// Raw writer used for interim responses
	ResponseStream() io.Writer
}

// DrainPolicy bounds the work done to discard an unread body.
type DrainPolicy struct {
	BufferSize  int
	ReadTimeout time.Duration
}

// Option customizes a request.
type Option func(r *Request)

// WithDrainPolicy overrides the default drain policy. Zero values keep defaults.
func WithDrainPolicy(p DrainPolicy) Option {
	return func(r *Request) {
		if p.BufferSize > 0 {
			r.drainPolicy.BufferSize = p.BufferSize
		}

		if p.ReadTimeout > 0 {
			r.drainPolicy.ReadTimeout = p.ReadTimeout
		}
	}
}

// CertificateResult is delivered by ClientCertificateAsync.
type CertificateResult struct {
	Certificate *x509.Certificate
	Err         error
}

// Request is one HTTP/1.x request read from a connection.
//
// A request is fed with SetRequestLine and AddHeader, then Finalize runs the
// validation pass once. The first validation failure sticks: every later step
// returns it without doing anything. See Err.
type Request struct {
	conn        Connection
	drainPolicy DrainPolicy
	traceID     uuid.UUID

	line      *RequestLine
	headers   *Headers
	err       *ValidationError
	finalized bool
	continued bool
	readOnly  bool

	contentLength   int64
	chunked         bool
	contentType     string
	contentEncoding encoding.Encoding
	referrer        *url.URL
	url             *url.URL

	// Shared by aliases
	body    *entityBody
	derived *derivedFields
}

type entityBody struct {
	stream  io.ReadCloser
	content []byte
}

// derivedFields memoizes values computed on demand from the header set.
type derivedFields struct {
	acceptTypes   []string
	userLanguages []string
	queryString   url.Values
	cookies       []*http.Cookie
	websocket     bool
	websocketSet  bool
}

// New creates a request reading from the given connection.
func New(conn Connection, opts ...Option) *Request {
	r := &Request{
		conn: conn,
		drainPolicy: DrainPolicy{
			BufferSize:  DefaultDrainBufferSize,
			ReadTimeout: DefaultDrainReadTimeout,
		},
		traceID:       uuid.New(),
		headers:       NewHeaders(),
		contentLength: -1,
		body:          &entityBody{},
		derived:       &derivedFields{},
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

// Alias returns a read-only view of r, meant to be taken once r is finalized.
// The view shares the header set, the body state and the memoized derived
// values: reading the body through one handle consumes it for both.
// Fields resolved by Finalize are copied when the view is created.
// SetRequestLine, AddHeader and Finalize fail on the view with ErrReadOnly.
func (r *Request) Alias() *Request {
	cp := *r
	cp.readOnly = true

	return &cp
}

// Err returns the validation failure recorded for this request, if any.
func (r *Request) Err() error {
	if r.err == nil {
		return nil
	}

	return r.err
}

// Method returns the request method, empty before the request line is set.
func (r *Request) Method() string {
	if r.line == nil {
		return ""
	}

	return r.line.Method
}

// Target returns the raw request target.
func (r *Request) Target() string {
	if r.line == nil {
		return ""
	}

	return r.line.Target
}

// ProtocolVersion returns the version announced on the request line.
func (r *Request) ProtocolVersion() ProtocolVersion {
	if r.line == nil {
		return ProtocolVersion{}
	}

	return r.line.Version
}

func (r *Request) Headers() *Headers { return r.headers }

// ContentLength returns the declared body length, -1 when unknown.
func (r *Request) ContentLength() int64 { return r.contentLength }

// Chunked reports whether the body uses the chunked transfer coding.
func (r *Request) Chunked() bool { return r.chunked }

// ContentType returns the lowercased media type of the Content-Type header.
func (r *Request) ContentType() string { return r.contentType }

func (r *Request) IsLocal() bool { return r.conn.IsLocal() }

func (r *Request) IsSecureConnection() bool { return r.conn.IsSecure() }

func (r *Request) LocalEndPoint() net.Addr { return r.conn.LocalAddr() }

func (r *Request) RemoteEndPoint() net.Addr { return r.conn.RemoteAddr() }

// RequestTraceIdentifier returns the identifier generated for this request.
func (r *Request) RequestTraceIdentifier() uuid.UUID { return r.traceID }

// InterimResponseSent reports whether a 100 Continue was written during Finalize.
func (r *Request) InterimResponseSent() bool { return r.continued }

// UserAgent returns the User-Agent header.
func (r *Request) UserAgent() string { return r.headers.Get("User-Agent") }

// UserHostName returns the Host header, port included.
func (r *Request) UserHostName() string { return r.headers.Get("Host") }

// UserHostAddress returns the local endpoint the request was received on.
func (r *Request) UserHostAddress() string {
	addr := r.conn.LocalAddr()
	if addr == nil {
		return ""
	}

	return addr.String()
}

// ClientCertificate is not implemented.
func (r *Request) ClientCertificate() (*x509.Certificate, error) {
	return nil, errors.WithStack(ErrNotImplemented)
}

// ClientCertificateAsync is not implemented. The channel always yields an error.
func (r *Request) ClientCertificateAsync(_ context.Context) <-chan CertificateResult {
	ch := make(chan CertificateResult, 1)
	ch <- CertificateResult{Err: errors.WithStack(ErrNotImplemented)}
	close(ch)

	return ch
}

// ClientCertificateError is not supported.
func (r *Request) ClientCertificateError() (int, error) {
	return 0, errors.WithStack(ErrNotSupported)
}

func (r *Request) String() string {
	if r.line == nil {
		return r.headers.String()
	}

	return r.line.String() + "\r\n" + r.headers.String()
}
